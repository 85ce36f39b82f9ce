/*
Package ddns keeps a single DNS address record in sync with the public address of the
machine it runs on.

Usage will always start with [ddns.New],
which returns the DDNSClient implementation.
New requires the hosted zone ID that contains the record and a DNS session option such as
[UsingRoute53] or [UsingCloudflare].
Additional client configuration options are listed in the docs for New.

Each call to RunDDNS starts from zero local knowledge:
it discovers the public address, reads the record from the DNS provider,
and only issues an update when the two differ.
The DNS provider is the only source of truth for the previous address.

The public address is taken from the first address provider that answers with a valid
dotted-quad. Providers are not cross-checked against each other.
*/
package ddns

package ddns_test

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Travis-Britz/r53ddns"
)

func ExampleNew() {
	c, err := ddns.New(
		"Z1D633PJN98FT9",
		ddns.UsingRoute53(ddns.StaticCredentials(os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"))),
		ddns.WithSubdomain("home"),
		ddns.WithLogger(slog.Default()),
		ddns.UsingHTTPClient(http.DefaultClient),
	)
	if err != nil {
		log.Fatalf("error creating ddns client: %s", err)
	}
	// run once:
	if _, err := c.RunDDNS(context.Background()); err != nil {
		log.Fatalf("ddns update failed: %s", err)
	}
}

func ExampleWebResolver() {
	// I'm not vouching for these services, but they do return the IP of the client connection.
	// If possible, run your own and provide the URL here instead.
	r := ddns.WebResolver(
		ddns.PlainText("https://checkip.amazonaws.com/"),
		ddns.PlainText("https://ipinfo.io/ip"),
		ddns.JSONField("https://api.ipify.org/?format=json", "ip"),
	)
	ddnsClient, err := ddns.New("Z1D633PJN98FT9",
		ddns.UsingRoute53(ddns.StaticCredentials(os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"))),
		ddns.UsingResolver(r),
	)
	if err != nil {
		log.Fatalf("error creating ddns client: %s", err)
	}
	// run once:
	if _, err := ddnsClient.RunDDNS(context.Background()); err != nil {
		log.Fatalf("ddns update failed: %s", err)
	}
}

func ExampleRunDaemon() {
	ddnsClient, err := ddns.New("023e105f4ecef8ad9ca31a8372d0c353",
		ddns.UsingCloudflare(func() (ddns.Credentials, error) {
			return ddns.Credentials{APIToken: os.Getenv("CLOUDFLARE_ZONE_TOKEN")}, nil
		}),
		ddns.WithSubdomain("home.example.com"),
	)
	if err != nil {
		log.Fatalf("error creating ddns client: %s", err)
	}

	// run every 5 minutes and stop after an hour:
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Hour)
	defer cancel()
	ddns.RunDaemon(ddnsClient, ctx, 5*time.Minute, nil)
}

func ExampleInterfaceResolver() {
	ddnsClient, err := ddns.New("Z1D633PJN98FT9",
		ddns.UsingRoute53(ddns.StaticCredentials(os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"))),
		ddns.UsingResolver(ddns.InterfaceResolver("eth0", "wlan0")),
		ddns.WithSubdomain("nas.internal"),
	)
	if err != nil {
		log.Fatalf("error creating ddns client: %s", err)
	}
	// run once:
	if _, err := ddnsClient.RunDDNS(context.Background()); err != nil {
		log.Fatalf("ddns update failed: %s", err)
	}
}

func ExampleResolverFunc() {
	fn := func(ctx context.Context) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(100 * time.Millisecond): // simulating some lookup method
			return "10.0.0.10", nil
		}
	}
	zones := ddns.NewMemoryZones()
	zones.AddZone("Z123", "example.com.").AddRecord("home.example.com.", "A", 300, "10.0.0.1")

	ddnsClient, err := ddns.New("Z123",
		ddns.UsingSession(zones.Session()),
		ddns.UsingResolver(ddns.ResolverFunc(fn)),
	)
	if err != nil {
		log.Fatalf("error creating ddns client: %s", err)
	}
	outcome, err := ddnsClient.RunDDNS(context.Background())
	if err != nil {
		log.Fatalf("ddns update failed: %s", err)
	}
	log.Println(outcome)
}

func ExampleWithJitter() {
	host, _ := os.Hostname()
	ddnsClient, err := ddns.New("Z1D633PJN98FT9",
		ddns.UsingRoute53(ddns.StaticCredentials(os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"))),
		ddns.WithJitter(host),
	)
	if err != nil {
		log.Fatalf("error creating ddns client: %s", err)
	}
	if _, err := ddnsClient.RunDDNS(context.Background()); err != nil {
		log.Fatalf("ddns update failed: %s", err)
	}
}

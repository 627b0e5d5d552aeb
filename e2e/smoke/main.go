// Command smoke drives a running server through the ownership scenario:
// a manager creates a restaurant, a second manager is refused an update, and
// the creator deletes it.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	httpclient "github.com/astro-web3/restaurant-api/pkg/http"
)

const managerRoleID = 2

type check struct {
	name string
	want int
	got  int
}

func main() {
	serverAddr := "http://localhost:8080"
	if len(os.Args) > 1 {
		serverAddr = os.Args[1]
	}

	ctx := context.Background()
	client := httpclient.NewClient(serverAddr, httpclient.WithTimeout(10*time.Second))

	owner := mustLogin(ctx, client, "owner")
	stranger := mustLogin(ctx, client, "stranger")

	var checks []check
	record := func(name string, want int, resp interface{ StatusCode() int }) {
		checks = append(checks, check{name: name, want: want, got: resp.StatusCode()})
	}

	resp, err := client.Get(ctx, "/api/restaurant",
		httpclient.WithQuery(map[string]string{"pageSize": "5", "pageNumber": "1"}))
	must(err)
	record("list anonymously", http.StatusOK, resp)

	resp, err = client.Post(ctx, "/api/restaurant",
		httpclient.WithAuthToken(owner),
		httpclient.WithBody(map[string]any{
			"name":     "Smoke Bistro",
			"category": "Test",
			"city":     "Kraków",
			"street":   "Floriańska 1",
		}))
	must(err)
	record("create as manager", http.StatusCreated, resp)
	location := resp.Header().Get("Location")
	if location == "" {
		log.Fatalf("❌ create returned no Location header (status %d: %s)", resp.StatusCode(), resp.String())
	}

	resp, err = client.Get(ctx, location, httpclient.WithAuthToken(owner))
	must(err)
	record("get as adult", http.StatusOK, resp)

	update := httpclient.WithBody(map[string]any{"name": "Smoke Bistro 2", "hasDelivery": true})

	resp, err = client.Put(ctx, location, httpclient.WithAuthToken(stranger), update)
	must(err)
	record("update as stranger", http.StatusForbidden, resp)

	resp, err = client.Put(ctx, location, httpclient.WithAuthToken(owner), update)
	must(err)
	record("update as owner", http.StatusOK, resp)

	resp, err = client.Delete(ctx, location, httpclient.WithAuthToken(stranger))
	must(err)
	record("delete as stranger", http.StatusForbidden, resp)

	resp, err = client.Delete(ctx, location, httpclient.WithAuthToken(owner))
	must(err)
	record("delete as owner", http.StatusNoContent, resp)

	failed := 0
	for _, c := range checks {
		if c.got == c.want {
			fmt.Printf("✅ %-20s %d\n", c.name, c.got)
			continue
		}
		failed++
		fmt.Printf("❌ %-20s got %d, want %d\n", c.name, c.got, c.want)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func mustLogin(ctx context.Context, client *httpclient.Client, prefix string) string {
	email := fmt.Sprintf("%s-%s@smoke.test", prefix, uuid.NewString()[:8])
	password := uuid.NewString()

	resp, err := client.Post(ctx, "/api/account/register", httpclient.WithBody(map[string]any{
		"email":           email,
		"password":        password,
		"confirmPassword": password,
		"dateOfBirth":     "1990-01-01",
		"nationality":     "Polish",
		"roleId":          managerRoleID,
	}))
	must(err)
	if resp.StatusCode() != http.StatusOK {
		log.Fatalf("❌ register %s: status %d: %s", email, resp.StatusCode(), resp.String())
	}

	resp, err = client.Post(ctx, "/api/account/login", httpclient.WithBody(map[string]string{
		"email":    email,
		"password": password,
	}))
	must(err)
	if resp.StatusCode() != http.StatusOK {
		log.Fatalf("❌ login %s: status %d: %s", email, resp.StatusCode(), resp.String())
	}
	return resp.String()
}

func must(err error) {
	if err != nil {
		log.Fatalf("❌ request failed: %v", err)
	}
}

// ABOUTME: Basic example of embedding the newsdesk library
// ABOUTME: Fetches a few collections and prints them with their fallback state

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	newsdesk "newsdesk-api/newsdesk-lib"
)

func main() {
	baseURL := os.Getenv("ORIGIN_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000/api"
	}

	client, err := newsdesk.NewClient(
		newsdesk.WithBaseURL(baseURL),
		newsdesk.WithCacheOption(newsdesk.CacheOption{Type: newsdesk.CacheTypeSQLite}),
		newsdesk.WithImageProbing(5*time.Second),
		newsdesk.WithQuietMode(),
	)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	ctx := context.Background()

	for _, selector := range []string{"breaking", "trending", "National", "side:Sports,Health"} {
		articles, err := client.Fetch(ctx, selector, 0, "")
		if err != nil {
			log.Printf("%s: %v", selector, err)
			continue
		}

		fmt.Printf("== %s (%d)\n", selector, len(articles))
		for _, a := range articles {
			fmt.Printf("  %-28s %-40.40s %s\n", a.ID, a.Title, a.PublishedAt.TimeAgo)
		}
	}
}

// seed creates the profile and some sample content in the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/ErlanBelekov/portfolio/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/portfolio/internal/repository"
)

const seedEmail = "owner@portfolio.local"

func ptr[T any](v T) *T { return &v }

var projects = []domain.Project{
	{
		Title:            "Distributed job scheduler",
		QuickDescription: "HTTP jobs with retries, backoff and cron schedules on Postgres.",
		ProjectURL:       ptr("https://github.com/ErlanBelekov/dist-job-scheduler"),
		Category:         "API",
		IsFeatured:       true,
	},
	{
		Title:            "Portfolio",
		QuickDescription: "This site: public profile, blog and an OTP-gated admin dashboard.",
		Category:         "Web Development",
		IsFeatured:       true,
	},
	{
		Title:            "Metrics dashboard",
		QuickDescription: "Prometheus-backed service overview.",
		Category:         "Dashboard",
	},
}

var blogs = []domain.Blog{
	{
		Title:       "Claiming jobs with SKIP LOCKED",
		Description: "How Postgres row locks make a simple and safe work queue.",
		Content:     ptr("<p>SELECT ... FOR UPDATE SKIP LOCKED lets many workers poll one table.</p>"),
		Category:    "Backend",
		IsPublished: true,
	},
	{
		Title:       "Draft: passwordless admin sign-in",
		Description: "One-time codes instead of passwords for a single operator.",
		Category:    "Tutorial",
	},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set, run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	profile, err := postgres.NewProfileRepository(pool).Upsert(ctx, repository.ProfilePatch{
		Name:  ptr("Portfolio Owner"),
		Bio:   ptr("Backend engineer. Go, Postgres, distributed systems."),
		Email: ptr(seedEmail),
		Social: &domain.Social{
			GitHub: "https://github.com/ErlanBelekov",
		},
	})
	if err != nil {
		log.Fatalf("upsert profile: %v", err)
	}

	projectRepo := postgres.NewProjectRepository(pool)
	existingProjects, err := projectRepo.List(ctx, repository.ListProjectsInput{})
	if err != nil {
		log.Fatalf("list projects: %v", err)
	}
	var projectsCreated int
	if len(existingProjects) == 0 {
		for i := range projects {
			if _, err := projectRepo.Create(ctx, &projects[i]); err != nil {
				log.Fatalf("create project %q: %v", projects[i].Title, err)
			}
			projectsCreated++
		}
	}

	blogRepo := postgres.NewBlogRepository(pool)
	existingBlogs, err := blogRepo.List(ctx, repository.ListBlogsInput{})
	if err != nil {
		log.Fatalf("list blogs: %v", err)
	}
	var blogsCreated int
	if len(existingBlogs) == 0 {
		for i := range blogs {
			if _, err := blogRepo.Create(ctx, &blogs[i]); err != nil {
				log.Fatalf("create blog %q: %v", blogs[i].Title, err)
			}
			blogsCreated++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Profile:  %s <%s>\n", profile.Name, seedEmail)
	fmt.Printf("  Projects: %d created (%d already present)\n", projectsCreated, len(existingProjects))
	fmt.Printf("  Blogs:    %d created (%d already present)\n", blogsCreated, len(existingBlogs))
	fmt.Println()
	fmt.Println("How to sign in:")
	fmt.Println()
	fmt.Println("  Step 1: request a code (ENV=local logs the email instead of sending it):")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/api/auth/send-otp \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\"}'\n", seedEmail)
	fmt.Println()
	fmt.Println("  Step 2: copy the 6-digit code from the server log, then:")
	fmt.Println()
	fmt.Println("    curl -s -c cookies.txt -X POST http://localhost:8080/api/auth/verify-otp \\")
	fmt.Println("      -H 'Content-Type: application/json' -d '{\"otp\":\"CODE\"}'")
	fmt.Println()
	fmt.Println("  Step 3: use the session cookie:")
	fmt.Println()
	fmt.Println("    curl -s -b cookies.txt http://localhost:8080/api/contact")
	fmt.Println()
	fmt.Println("  Or open http://localhost:8080/auth/login in a browser.")
}

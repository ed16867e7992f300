package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/cx-tal-miterani/lodging-booking/internal/config"
	"github.com/cx-tal-miterani/lodging-booking/internal/models"
)

const requestTimeout = 15 * time.Second

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: client [check|book|list] [flags]")
		os.Exit(1)
	}

	config.LoadDotEnv()
	c := newAPIClient(config.Get("API_URL", config.DefaultAPIURL), &http.Client{Timeout: requestTimeout})

	cmd := os.Args[1]
	switch cmd {
	case "check":
		checkCmd(c, os.Args[2:])
	case "book":
		bookCmd(c, os.Args[2:])
	case "list":
		listCmd(c, os.Args[2:])
	default:
		fmt.Println("unknown command:", cmd)
		os.Exit(1)
	}
}

func checkCmd(c *apiClient, args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	date := fs.String("date", "", "arrival date (MM/DD/YYYY)")
	days := fs.Int("days", 0, "length of stay in days")
	_ = fs.Parse(args)

	if *date == "" {
		log.Fatal("date is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := c.checkAvailability(ctx, *date, *days)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	printAvailability(os.Stdout, resp)
}

func bookCmd(c *apiClient, args []string) {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	name := fs.String("name", "", "guest name")
	contact := fs.String("contact", "", "contact number")
	guests := fs.Int("guests", 0, "number of guests")
	days := fs.Int("days", 0, "length of stay in days")
	date := fs.String("date", "", "arrival date (MM/DD/YYYY)")
	_ = fs.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	r, err := c.createReservation(ctx, &models.CreateReservationRequest{
		OwnerName:     *name,
		ContactNumber: *contact,
		GuestCount:    *guests,
		DurationDays:  *days,
		ArrivalDate:   *date,
	})
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
			fmt.Println("The date range is not available. Please choose another start date.")
			os.Exit(2)
		}
		log.Fatalf("Error: %v", err)
	}
	printScheduled(os.Stdout, r)
}

func listCmd(c *apiClient, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	_ = fs.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	list, err := c.listReservations(ctx)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	printAll(os.Stdout, list)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/velmark/marketops-backend/internal/app"
)

type catalogFile struct {
	Services []struct {
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		SubServices []string `yaml:"sub_services"`
	} `yaml:"services"`
}

func main() {
	var path string
	var dryRun bool
	flag.StringVar(&path, "file", "catalog.yaml", "path to the catalog seed file")
	flag.BoolVar(&dryRun, "dry-run", false, "print planned upserts without writing")
	flag.Parse()

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("read catalog file: %v\n", err)
		os.Exit(1)
	}
	var catalog catalogFile
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		fmt.Printf("parse catalog file: %v\n", err)
		os.Exit(1)
	}
	if len(catalog.Services) == 0 {
		fmt.Println("catalog file contains no services")
		return
	}

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()
	seeded := 0
	for _, entry := range catalog.Services {
		if entry.Name == "" {
			continue
		}
		if dryRun {
			fmt.Printf("[dry-run] upsert service %q with %d sub-services\n", entry.Name, len(entry.SubServices))
			continue
		}
		service, err := application.Services.Catalog.UpsertService(ctx, entry.Name, entry.Description)
		if err != nil {
			fmt.Printf("upsert service %q failed: %v\n", entry.Name, err)
			continue
		}
		for _, subName := range entry.SubServices {
			if subName == "" {
				continue
			}
			if _, err := application.Services.Catalog.UpsertSubService(ctx, service.ID, subName); err != nil {
				fmt.Printf("upsert sub-service %q under %q failed: %v\n", subName, entry.Name, err)
			}
		}
		seeded++
	}

	fmt.Printf("done; seeded=%d services\n", seeded)
}

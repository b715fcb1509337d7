package seed

import "os"

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Mind Lab journal seeder
=======================

Posts generated journal entries to a running service, resubmits some of
them to exercise deduplication, then checks that /analysis agrees with
the means recomputed from /records.

Usage:
  go run ./cmd/seed [options]

Options:
  -url string          Base URL of the service (default "http://localhost:9080")
  -entries int         Number of entries to generate (default 200)
  -span int            Spread entry dates over this many days (default 365)
  -duplicates int      Entries resubmitted with the same id (default 20)
  -workers int         Concurrent workers (default CPU cores)
  -timeout duration    HTTP request timeout (default 10s)
  -passphrase string   Journal passphrase (default $MINDLAB_PASSPHRASE)
  -period string       Period verified after seeding (default "all_time")
  -output string       Write generated entries to this JSON file
  -verbose             Log every failed submission
  -help                Show this help message
`)
}

// Command cli analyzes a CSV or XLSX file and prints the outlier report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"outlierscope/internal/analyze"
	"outlierscope/internal/ingest"
)

func main() {
	asJSON := flag.Bool("json", false, "emit the report as JSON")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: cli [-json] <file.csv|file.xlsx>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	raw, err := ingest.NewReader(path).Read()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		os.Exit(1)
	}

	ds, summary, err := ingest.BuildDataSet(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ingest %s: %v\n", path, err)
		os.Exit(1)
	}

	report, err := analyze.New().Run(ds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analyze %s: %v\n", path, err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "encode report: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("%s: %d columns (%v), %d rows, %d dropped\n\n",
		path, ds.Dimensions, summary.SelectedColumns, ds.Size(), summary.RowsDropped)
	for _, result := range report {
		fmt.Printf("%s — %s\n", result.MethodName, result.Description)
		if len(result.Outliers) == 0 {
			fmt.Println("  no outliers")
			continue
		}
		for _, rec := range result.Outliers {
			fmt.Printf("  row %d, column %q: %g (point %v)\n",
				rec.Index, ds.Headers[rec.ColumnIndex], rec.Value, rec.Point)
		}
		fmt.Println()
	}
}

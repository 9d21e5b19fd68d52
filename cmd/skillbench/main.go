// Command skillbench runs the three-stage skill benchmark: contestants
// produces paired vanilla/skilled outputs, jury scores them blind through a
// panel of LLM judges, and report renders the aggregated results.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

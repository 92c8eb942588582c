package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/strandplatform/strand-go/pkg/strand"
)

var pipelineFile string

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Execute a pipeline of {service, action, args} stages",
	Long: `Execute a document-API pipeline. Stages are read as a JSON array from
stdin, or from a file given with --file.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		input := io.Reader(os.Stdin)
		if pipelineFile != "" {
			f, err := os.Open(pipelineFile)
			if err != nil {
				return fmt.Errorf("open pipeline file: %w", err)
			}
			defer f.Close()
			input = f
		}

		var stages []strand.Stage
		if err := json.NewDecoder(input).Decode(&stages); err != nil {
			return fmt.Errorf("decode pipeline stages: %w", err)
		}

		client, closeClient, err := newClient()
		if err != nil {
			return err
		}
		defer closeClient()

		result, err := client.ExecutePipeline(cmd.Context(), stages...)
		if err != nil {
			return err
		}

		cmd.Println(string(result))
		return nil
	},
}

func init() {
	pipelineCmd.Flags().StringVar(&pipelineFile, "file", "", "read stages from this file instead of stdin")
	rootCmd.AddCommand(pipelineCmd)
}

package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common static errors used throughout the commands package.
var (
	ErrOperationFailed = errors.New("operation failed, run with --verbose for details")
	ErrPingFailed      = errors.New("API did not answer the ping")
	ErrEmptyPassword   = errors.New("password must not be empty")
)

// AddCommands registers every command on root.
func AddCommands(root *cobra.Command, version, commit, date string) {
	root.AddCommand(NewVersionCommand(version, commit, date))
	root.AddCommand(NewLoginCommand())
	root.AddCommand(NewLogoutCommand())
	root.AddCommand(NewPingCommand())
	root.AddCommand(NewCompaniesCommand())
	root.AddCommand(NewMembersCommand())
	root.AddCommand(NewEnvsCommand())
	root.AddCommand(NewAppsCommand())
	root.AddCommand(NewInstancesCommand())
	root.AddCommand(NewAccountCommand())
	root.AddCommand(NewConfigCommand())
}

// operationFailed reports a false client result. The cause has already
// been logged by the client.
func operationFailed(action string) error {
	return fmt.Errorf("%s: %w", action, ErrOperationFailed)
}

// outputFormat returns the validated --output value.
func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString("output"))

	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, format)
	}
}

// OutputRenderer handles different output formats.
type OutputRenderer[T any] struct {
	Header []string
	Rows   func(data T) [][]string
}

// Render writes data to w in the configured output format.
func (o *OutputRenderer[T]) Render(w io.Writer, data T) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(data)
	default:
		return renderTable(w, o.Header, o.Rows(data))
	}
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	cells := make([]any, len(header))
	for i, name := range header {
		cells[i] = name
	}

	table := tablewriter.NewWriter(w)
	table.Header(cells...)

	for _, row := range rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// printSuccess writes a one line confirmation in table mode only, so
// json and yaml output stay machine readable.
func printSuccess(cmd *cobra.Command, format string, args ...interface{}) {
	output, err := outputFormat()
	if err != nil || output != constants.FormatTable {
		return
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

// orNotAvailable substitutes N/A for empty values.
func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

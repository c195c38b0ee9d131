package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// UserLog prints messages meant for the person running the command.
// Diagnostics go to the zap logger instead.
type UserLog struct {
	log    *zap.Logger
	writer io.Writer
}

// NewUserLog returns a UserLog printing to w.
func NewUserLog(log *zap.Logger, w io.Writer) *UserLog {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserLog{log: log, writer: w}
}

// PrintToUser prints a formatted line to the user's output.
func (ul *UserLog) PrintToUser(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintln(ul.writer, formatted)
	ul.log.Debug(formatted)
}

// PrintTable renders rows under headers as a table.
func (ul *UserLog) PrintTable(headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(ul.writer)

	anyHeaders := make([]any, len(headers))
	for i, h := range headers {
		anyHeaders[i] = h
	}
	table.Header(anyHeaders...)

	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to add table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// NewProgressBar returns a bar counting to total, drawn on w.
func NewProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(description),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// promptUIRunner runs a prompt; replaced in tests.
var promptUIRunner = func(prompt promptui.Prompt) (string, error) {
	return prompt.Run()
}

// PromptConfirm asks a yes/no question on the terminal.
// Answering no is not an error.
func PromptConfirm(label string) (bool, error) {
	_, err := promptUIRunner(promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	default:
		return false, fmt.Errorf("prompt failed: %w", err)
	}
}

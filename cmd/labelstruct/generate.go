package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/labelstruct-go/internal/store"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/generator"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/output"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/render"
)

var (
	selectRows string
	setEdits   []string
	htmlOutput bool
	form       generator.Form
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [input.xlsx]",
		Short: "Generate labels from workbook rows or from a manual form",
		Long: `Without a workbook, labels are generated from the --start, --quantity and
related flags. With a workbook, the selected rows are expanded; rows with an
invalid starting value are skipped with a warning.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().StringVar(&selectRows, "select", "", "Comma separated row indexes to generate (default: all)")
	cmd.Flags().StringArrayVar(&setEdits, "set", nil, "Edit a row before generating, e.g. 0.label_id=A200 (repeatable)")
	cmd.Flags().BoolVar(&htmlOutput, "html", false, "Write print-ready HTML instead of JSON")

	cmd.Flags().StringVar(&form.StartingValue, "start", "", "Starting label number, e.g. A108")
	cmd.Flags().IntVar(&form.Quantity, "quantity", 1, "Number of labels")
	cmd.Flags().IntVar(&form.AggregateWeight, "weight", 0, "Total weight split across the labels")
	cmd.Flags().StringVar(&form.Material, "material", generator.DefaultMaterial, "Material or project name")
	cmd.Flags().StringVar(&form.Dimension, "dimension", "", "Dimension, e.g. 3x171")
	cmd.Flags().StringVar(&form.LotCode, "lot", "", "Serial/lot code")
	cmd.Flags().StringVar(&form.Date, "date", "", "Date as YYYY-MM-DD (default: today)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	st := store.New(log)

	var (
		data []models.LabelData
		err  error
	)
	if len(args) == 1 {
		data, err = generateFromWorkbook(args[0], st.Check)
	} else {
		data, err = generateFromForm()
	}
	if err != nil {
		return err
	}

	labels, err := st.BulkInsert(data)
	if err != nil {
		return err
	}

	if htmlOutput {
		return writeOutput(func(w io.Writer) error {
			if err := render.HTML(w, labels); err != nil {
				return fmt.Errorf("render failed: %w", err)
			}
			return nil
		})
	}
	return writeOutput(func(w io.Writer) error {
		return output.WriteJSON(w, labels, pretty)
	})
}

func generateFromForm() ([]models.LabelData, error) {
	f := form
	if f.Date == "" {
		f.Date = timeNow().Format(models.DateLayout)
	}
	return generator.Expand(f)
}

func generateFromWorkbook(inputPath string, check generator.LabelCheck) ([]models.LabelData, error) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", inputPath)
	}

	result := labelstruct.Extract(inputPath, extractOptions())
	if result.Fallback {
		fmt.Fprintf(os.Stderr, "warning: %s; using fallback row\n", result.Warning)
	}

	batch := generator.NewBatch(result.Rows)
	for _, arg := range setEdits {
		i, edit, err := parseEdit(arg)
		if err != nil {
			return nil, err
		}
		if err := batch.Edit(i, edit); err != nil {
			return nil, fmt.Errorf("--set %s: %w", arg, err)
		}
	}

	if selectRows == "" {
		batch.SelectAll()
	} else {
		indexes, err := parseIndexes(selectRows)
		if err != nil {
			return nil, err
		}
		if err := batch.Select(indexes...); err != nil {
			return nil, fmt.Errorf("--select: %w", err)
		}
	}

	out, err := batch.Generate(check)
	if err != nil {
		return nil, err
	}
	for _, skipped := range out.Skipped {
		log.Warn("skipping row", "row", skipped.Row, "identifier", skipped.Identifier)
		fmt.Fprintf(os.Stderr, "warning: %v\n", skipped)
	}
	for _, rejected := range out.Rejected {
		log.Warn("skipping row", "row", rejected.Row, "identifier", rejected.LabelID, "error", rejected.Err)
		fmt.Fprintf(os.Stderr, "warning: %v\n", rejected)
	}
	if err := out.Err(); err != nil {
		return nil, err
	}
	return out.Labels, nil
}

func parseIndexes(s string) ([]int, error) {
	var indexes []int
	for _, part := range strings.Split(s, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid row index %q", part)
		}
		indexes = append(indexes, i)
	}
	return indexes, nil
}

// parseEdit parses "<row>.<field>=<value>" into a row edit.
func parseEdit(arg string) (int, generator.RowEdit, error) {
	var edit generator.RowEdit

	target, value, ok := strings.Cut(arg, "=")
	if !ok {
		return 0, edit, fmt.Errorf("invalid edit %q: expected <row>.<field>=<value>", arg)
	}
	rowStr, field, ok := strings.Cut(target, ".")
	if !ok {
		return 0, edit, fmt.Errorf("invalid edit %q: expected <row>.<field>=<value>", arg)
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return 0, edit, fmt.Errorf("invalid edit %q: bad row index", arg)
	}

	switch field {
	case "label_id":
		edit.LabelID = &value
	case "project_name":
		edit.ProjectName = &value
	case "lot_code":
		edit.LotCode = &value
	case "dimension":
		edit.Dimension = &value
	case "date":
		edit.Date = &value
	case "weight", "quantity":
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, edit, fmt.Errorf("invalid edit %q: %s must be an integer", arg, field)
		}
		if field == "weight" {
			edit.Weight = &n
		} else {
			edit.Quantity = &n
		}
	default:
		return 0, edit, fmt.Errorf("invalid edit %q: unknown field %q", arg, field)
	}
	return row, edit, nil
}

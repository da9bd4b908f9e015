package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/propbooks-dev/propbooks/internal/auditlog"
	"github.com/propbooks-dev/propbooks/internal/id"
	"github.com/propbooks-dev/propbooks/internal/importer"
	"github.com/propbooks-dev/propbooks/internal/model"
	"github.com/propbooks-dev/propbooks/internal/readings"
	"github.com/propbooks-dev/propbooks/internal/receipt"
)

func newImportCommand() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import external data files",
	}
	importCmd.AddCommand(newImportListCommand())
	importCmd.AddCommand(newImportRunCommand())
	return importCmd
}

func newImportListCommand() *cobra.Command {
	var booksDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List files waiting in import/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := resolveBooksDir(booksDir)
			if err != nil {
				return err
			}
			files, err := importer.Scan(absDir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("No files to import.")
				return nil
			}
			for _, f := range files {
				fmt.Printf("%s (%d bytes)\n", f.Name, f.Size)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books repository directory")

	return cmd
}

func newImportRunCommand() *cobra.Command {
	var booksDir string
	var format string

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Parse and post an import file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(booksDir)
			if err != nil {
				return err
			}
			return runImport(b, args[0], format)
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books repository directory")
	cmd.Flags().StringVar(&format, "format", "", "file format: meter or legacy (required)")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

func runImport(b *books, fileName, format string) error {
	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown import format %q", format)
	}

	files, err := importer.Scan(b.dir)
	if err != nil {
		return err
	}
	var file *importer.FileInfo
	for i := range files {
		if files[i].Name == fileName {
			file = &files[i]
			break
		}
	}
	if file == nil {
		return fmt.Errorf("file %q not found in import/", fileName)
	}

	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file.Path, err)
	}
	batch, err := parser.Parse(f)
	f.Close()
	if err != nil {
		return err
	}

	posted := 0
	if len(batch.Readings) > 0 {
		posted, err = importReadings(b, batch.Readings)
		if err != nil {
			return err
		}
	}
	if len(batch.Receipts) > 0 {
		n, err := importReceipts(b, batch.Receipts)
		if err != nil {
			return err
		}
		posted += n
	}

	event := auditlog.NewEvent(b.cfg.Receipts.Actor, auditlog.ActionImportFile)
	event.Details = fmt.Sprintf("%s (%s): %d records", fileName, format, posted)
	if err := auditlog.Append(b.dir, []auditlog.Event{event}); err != nil {
		logger.Warn().Err(err).Msg("failed to write audit log")
	}

	if err := importer.MarkProcessed(b.dir, fileName); err != nil {
		return err
	}

	b.commit(fmt.Sprintf("Import %s (%d records)", fileName, posted))

	logger.Info().Str("file", fileName).Int("records", posted).Msg("import complete")
	fmt.Printf("Imported %d records from %s\n", posted, fileName)
	return nil
}

// importReadings maps meter numbers to units through the config and stores
// the resulting readings. Unmapped meters are skipped with a warning.
func importReadings(b *books, records []importer.ReadingRecord) (int, error) {
	svc := readings.NewService(b.dir)

	posted := 0
	for _, rec := range records {
		meter, ok := b.cfg.Meters[rec.MeterNumber]
		if !ok {
			logger.Warn().Str("meter", rec.MeterNumber).Msg("no meter mapping in config, skipping")
			continue
		}
		_, err := svc.Add(model.Reading{
			ItemID:        meter.ItemID,
			UnitID:        meter.UnitID,
			Date:          rec.Date,
			PreviousValue: rec.Previous,
			CurrentValue:  rec.Current,
			UnitPrice:     rec.Rate,
		})
		if err != nil {
			return posted, fmt.Errorf("meter %s: %w", rec.MeterNumber, err)
		}
		posted++
	}
	return posted, nil
}

// importReceipts re-derives and posts each legacy receipt. Receipt numbers
// are issued fresh by the store; the export's numbering is recorded in the
// description only.
func importReceipts(b *books, records []importer.LegacyReceipt) (int, error) {
	posted := 0
	for _, rec := range records {
		desc := rec.Description
		if desc == "" {
			desc = fmt.Sprintf("Imported legacy receipt %d", rec.No)
		}
		rcpt, entryID, err := b.receipts.Create(receipt.Draft{
			Date:           rec.Date,
			UnitID:         rec.UnitID,
			PayerID:        rec.PayerID,
			AssetAccountID: rec.AccountID,
			Description:    desc,
			Lines:          rec.Lines,
		})
		if err != nil {
			return posted, fmt.Errorf("legacy receipt %d: %w", rec.No, err)
		}
		logger.Debug().
			Int("legacy_no", rec.No).
			Str("receipt", id.FormatReceiptRef(rcpt.No)).
			Str("entry", entryID).
			Msg("posted legacy receipt")
		posted++
	}
	return posted, nil
}

package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/propbooks-dev/propbooks/internal/auditlog"
	"github.com/propbooks-dev/propbooks/internal/model"
	"github.com/propbooks-dev/propbooks/internal/readings"
)

func newReadingCommand() *cobra.Command {
	readingCmd := &cobra.Command{
		Use:   "reading",
		Short: "Meter reading operations",
	}
	readingCmd.AddCommand(newReadingAddCommand())
	return readingCmd
}

func newReadingAddCommand() *cobra.Command {
	var booksDir string
	var itemID, unitID int
	var dateStr, currentStr, previousStr, priceStr string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a meter reading for a unit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(booksDir)
			if err != nil {
				return err
			}
			return runReadingAdd(b, itemID, unitID, dateStr, currentStr, previousStr, priceStr)
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books repository directory")
	cmd.Flags().IntVar(&itemID, "item", 0, "catalog item id (required)")
	cmd.Flags().IntVar(&unitID, "unit", 0, "unit id (required)")
	cmd.Flags().StringVar(&dateStr, "date", "", "reading date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&currentStr, "current", "", "current meter value (required)")
	cmd.Flags().StringVar(&previousStr, "previous", "", "previous meter value (default: latest reading)")
	cmd.Flags().StringVar(&priceStr, "price", "", "unit price (default: catalog average cost)")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("unit")
	_ = cmd.MarkFlagRequired("current")

	return cmd
}

func runReadingAdd(b *books, itemID, unitID int, dateStr, currentStr, previousStr, priceStr string) error {
	svc := readings.NewService(b.dir)

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if dateStr != "" {
		var err error
		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("parsing date %q: %w", dateStr, err)
		}
	}

	current, err := decimal.NewFromString(currentStr)
	if err != nil {
		return fmt.Errorf("parsing current value %q: %w", currentStr, err)
	}

	var previous decimal.Decimal
	if previousStr != "" {
		previous, err = decimal.NewFromString(previousStr)
		if err != nil {
			return fmt.Errorf("parsing previous value %q: %w", previousStr, err)
		}
	} else if latest, found, err := svc.Latest(itemID, unitID); err != nil {
		return err
	} else if found {
		previous = latest.CurrentValue
		logger.Debug().
			Str("previous", previous.String()).
			Msg("seeded previous value from latest reading")
	}

	var price decimal.Decimal
	if priceStr != "" {
		price, err = decimal.NewFromString(priceStr)
		if err != nil {
			return fmt.Errorf("parsing unit price %q: %w", priceStr, err)
		}
	} else if item, ok := b.catalog.Item(itemID); ok {
		price = item.AvgCost
	}

	saved, err := svc.Add(model.Reading{
		ItemID:        itemID,
		UnitID:        unitID,
		Date:          date,
		PreviousValue: previous,
		CurrentValue:  current,
		UnitPrice:     price,
	})
	if err != nil {
		return err
	}

	event := auditlog.NewEvent(b.cfg.Receipts.Actor, auditlog.ActionAddReading)
	event.Details = fmt.Sprintf("item %d unit %d: %s -> %s, amount %s",
		itemID, unitID, saved.PreviousValue, saved.CurrentValue, saved.Amount.StringFixed(2))
	if err := auditlog.Append(b.dir, []auditlog.Event{event}); err != nil {
		logger.Warn().Err(err).Msg("failed to write audit log")
	}

	b.commit(fmt.Sprintf("Record reading for item %d, unit %d", itemID, unitID))

	consumption := readings.Consumption(saved.PreviousValue, saved.CurrentValue)
	fmt.Printf("Recorded reading: consumption %s, amount %s\n",
		consumption, saved.Amount.StringFixed(2))
	return nil
}

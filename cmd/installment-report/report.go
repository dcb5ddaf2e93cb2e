package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	"github.com/finance-tracker/wallet-api/internal/domain/service"
	"github.com/finance-tracker/wallet-api/internal/integration/entrypoint/dto"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

type groupReport struct {
	InstallmentID         int64  `json:"installment_id"`
	Description           string `json:"description"`
	Category              string `json:"category,omitempty"`
	TotalAmount           string `json:"total_amount"`
	InstallmentCount      int    `json:"installment_count"`
	PaidInstallments      int    `json:"paid_installments"`
	RemainingInstallments int    `json:"remaining_installments"`
	IsCompleted           bool   `json:"is_completed"`
	Transactions          int    `json:"transactions"`
}

type report struct {
	InstallmentGroups   []groupReport                `json:"installment_groups"`
	RegularTransactions int                          `json:"regular_transactions"`
	Stats               dto.InstallmentStatsResponse `json:"stats"`
}

func rootCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "installment-report [file]",
		Short: "Group exported transactions by installment purchase",
		Long: `Reads a JSON array of transactions, as returned by GET /api/v1/transactions,
from a file or from stdin and prints the installment groups, the number of regular
transactions and the installment statistics.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatText && format != formatJSON {
				return fmt.Errorf("unsupported format %q: use %s or %s", format, formatText, formatJSON)
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open transactions file: %w", err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			transactions, err := readTransactions(in)
			if err != nil {
				return err
			}

			r := buildReport(transactions)
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), r)
			}
			return writeText(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")

	return cmd
}

// readTransactions decodes either a bare array or a list response with a
// "transactions" field.
func readTransactions(r io.Reader) ([]*entity.Transaction, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	var responses []dto.TransactionResponse
	if err := json.Unmarshal(raw, &responses); err != nil {
		var list dto.TransactionListResponse
		if listErr := json.Unmarshal(raw, &list); listErr != nil {
			return nil, fmt.Errorf("failed to decode transactions: %w", err)
		}
		responses = list.Transactions
	}

	transactions := make([]*entity.Transaction, 0, len(responses))
	for _, resp := range responses {
		txn, err := resp.ToEntity()
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	return transactions, nil
}

func buildReport(transactions []*entity.Transaction) report {
	grouping := service.GroupTransactionsByInstallment(transactions)
	stats := service.CalculateInstallmentStats(transactions)

	r := report{
		InstallmentGroups:   make([]groupReport, len(grouping.InstallmentGroups)),
		RegularTransactions: len(grouping.RegularTransactions),
		Stats: dto.InstallmentStatsResponse{
			TotalGroups:          stats.TotalGroups,
			CompletedGroups:      stats.CompletedGroups,
			ActiveGroups:         stats.ActiveGroups,
			TotalAmount:          stats.TotalAmount.StringFixed(2),
			PaidAmount:           stats.PaidAmount.StringFixed(2),
			RemainingAmount:      stats.RemainingAmount.StringFixed(2),
			CompletionPercentage: stats.CompletionPercentage.StringFixed(2),
		},
	}

	for i, group := range grouping.InstallmentGroups {
		gr := groupReport{
			InstallmentID:         group.InstallmentID,
			Description:           group.Description,
			TotalAmount:           group.TotalAmount.StringFixed(2),
			InstallmentCount:      group.InstallmentCount,
			PaidInstallments:      group.PaidInstallments,
			RemainingInstallments: group.RemainingInstallments(),
			IsCompleted:           group.IsCompleted(),
			Transactions:          len(group.Transactions),
		}
		if group.Category != nil {
			gr.Category = group.Category.Name
		}
		r.InstallmentGroups[i] = gr
	}

	return r
}

func writeJSON(w io.Writer, r report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeText(w io.Writer, r report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tDESCRIPTION\tCATEGORY\tTOTAL\tPAID\tSTATUS")
	for _, g := range r.InstallmentGroups {
		status := "active"
		if g.IsCompleted {
			status = "completed"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d/%d\t%s\n",
			g.InstallmentID, g.Description, g.Category, g.TotalAmount,
			g.PaidInstallments, g.InstallmentCount, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := r.Stats
	_, err := fmt.Fprintf(w, "\nRegular transactions: %d\nGroups: %d (%d completed, %d active)\nTotal: %s  Paid: %s  Remaining: %s  Completion: %s%%\n",
		r.RegularTransactions,
		s.TotalGroups, s.CompletedGroups, s.ActiveGroups,
		s.TotalAmount, s.PaidAmount, s.RemainingAmount, s.CompletionPercentage)
	return err
}

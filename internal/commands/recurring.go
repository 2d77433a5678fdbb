package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/osadchistudio/family-finance-sub001/internal/auditlog"
	"github.com/osadchistudio/family-finance-sub001/internal/model"
	"github.com/osadchistudio/family-finance-sub001/internal/recurring"
)

func newRecurringCommand(dir *string) *cobra.Command {
	var off bool
	var learn bool
	var identical bool

	cmd := &cobra.Command{
		Use:   "recurring <transaction-id>",
		Short: "Mark a transaction as a recurring charge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecurring(*dir, args[0], off, learn, identical)
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "clear the recurring flag instead of setting it")
	cmd.Flags().BoolVar(&learn, "learn", false, "learn (or with --off forget) the merchant keyword")
	cmd.Flags().BoolVar(&identical, "identical", false, "also flip identical transactions (same category, description, amount)")

	return cmd
}

func runRecurring(dir, txnID string, off, learn, identical bool) error {
	e, err := openEnv(dir)
	if err != nil {
		return err
	}
	defer e.close()

	src, err := e.ledger.Get(txnID)
	if err != nil {
		return err
	}

	target := !off
	if _, err := e.ledger.SetRecurring([]string{txnID}, target); err != nil {
		return err
	}
	src.IsRecurring = target
	fmt.Printf("%s recurring=%t\n", txnID, target)

	var pool []model.Transaction
	if learn || identical {
		pool, err = e.ledger.ReadAll()
		if err != nil {
			return err
		}
	}

	if learn {
		if off {
			// Forget the keyword so future imports stop auto-flagging,
			// leaving already-flagged history untouched.
			if kw, ok := recurring.Unlearn(src); ok {
				removed, err := e.kw.DeleteRecurringKeyword(model.RecurringKeyword{Keyword: kw})
				if err != nil {
					return err
				}
				if removed {
					fmt.Printf("  forgot keyword %q\n", kw)
					if err := appendRecurringAudit(e.dir, "unlearn-recurring", kw, 0); err != nil {
						return err
					}
				}
			}
		} else if res, ok := recurring.Learn(src, pool); ok {
			if _, err := e.kw.PutRecurringKeyword(model.RecurringKeyword{Keyword: res.Keyword}); err != nil {
				return err
			}
			flipped, err := e.ledger.SetRecurring(res.CandidateIDs, true)
			if err != nil {
				return err
			}
			fmt.Printf("  learned keyword %q, flagged %d matching transactions\n", res.Keyword, flipped)
			if err := appendRecurringAudit(e.dir, "learn-recurring", res.Keyword, flipped); err != nil {
				return err
			}
		}
	}

	if identical {
		ids := recurring.SelectIdentical(src, pool, target)
		flipped, err := e.ledger.SetRecurring(ids, target)
		if err != nil {
			return err
		}
		if flipped > 0 {
			fmt.Printf("  flipped %d identical transactions\n", flipped)
			if err := appendRecurringAudit(e.dir, "cascade-recurring", "", flipped); err != nil {
				return err
			}
		}
	}

	e.autoCommit("recurring: " + txnID)
	return nil
}

func appendRecurringAudit(dir, action, keyword string, affected int) error {
	return auditlog.Append(dir, auditlog.Entry{
		Timestamp: time.Now(),
		Action:    action,
		Keyword:   keyword,
		Affected:  affected,
	})
}

// demo walks a withdraw wizard from the command line, printing each
// transition outcome and the validation errors along the way.
package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"exwiz/internal/model"
	"exwiz/internal/wizard"
)

func main() {
	balances := map[string]decimal.Decimal{"BTC": decimal.RequireFromString("0.55")}
	st, err := wizard.New(model.FlowWithdraw,
		wizard.WithBalanceFunc(func(ccy string) decimal.Decimal { return balances[ccy] }),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("== withdraw wizard ==")
	report(st, st.Next()) // refused: nothing entered yet

	set(st, model.FieldCurrency, "BTC")
	report(st, st.Next())

	set(st, model.FieldNetwork, "bitcoin")
	report(st, st.Next())

	// Over the available balance: the validator blocks the step.
	set(st, model.FieldAddress, "bc1qexampledestination000000000000")
	set(st, model.FieldAmount, "0.6")
	report(st, st.Next())

	set(st, model.FieldAmount, "0.1")
	report(st, st.Next())

	// Terminal step: next signals completion instead of advancing.
	report(st, st.Next())
}

func set(st *wizard.Store, name, value string) {
	st.SetField(name, value)
	fmt.Printf("  set %s = %q\n", name, value)
}

func report(st *wizard.Store, res wizard.Result) {
	fmt.Printf("next: %s (%s -> %s)", res.Outcome, res.From, res.To)
	if res.Reason != wizard.ReasonNone {
		fmt.Printf(" reason=%s", res.Reason)
	}
	fmt.Println()
	for _, e := range st.Errors() {
		fmt.Printf("  ! %s: %s\n", e.Field, e.Message)
	}
}

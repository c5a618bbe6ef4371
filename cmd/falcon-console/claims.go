package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/falconrcm/console/internal/domain/claim"
)

func claimsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claims",
		Short: "Manage claims",
	}
	cmd.AddCommand(claimsListCmd())
	cmd.AddCommand(claimsShowCmd())
	cmd.AddCommand(claimsCreateCmd())
	cmd.AddCommand(claimsSubmitCmd())
	cmd.AddCommand(claimsDenialsCmd())
	cmd.AddCommand(claimsEligibilityCmd())
	return cmd
}

func claimsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one claim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			c, err := a.claims.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "ID:\t%s\n", c.ID)
			fmt.Fprintf(w, "Patient:\t%s\n", c.PatientID)
			fmt.Fprintf(w, "Encounter:\t%s\n", deref(c.EncounterID))
			fmt.Fprintf(w, "Status:\t%s\n", c.Status)
			fmt.Fprintf(w, "Payer:\t%s\n", deref(c.PayerName))
			fmt.Fprintf(w, "Amount:\t$%.2f\n", c.TotalAmount)
			if c.SubmittedAt != nil {
				fmt.Fprintf(w, "Submitted:\t%s\n", c.SubmittedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func claimsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a claim",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			in := claim.CreateInput{}
			in.PatientID, _ = cmd.Flags().GetString("patient")
			in.EncounterID = flagPtr(cmd, "encounter")
			in.PayerID = flagPtr(cmd, "payer")
			in.TotalAmount, _ = cmd.Flags().GetFloat64("amount")
			in.ICDCodes, _ = cmd.Flags().GetStringSlice("icd")
			in.CPTCodes, _ = cmd.Flags().GetStringSlice("cpt")

			c, err := a.claims.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Printf("Created claim %s ($%.2f)\n", c.ID, c.TotalAmount)
			return nil
		},
	}
	cmd.Flags().String("patient", "", "Patient id")
	cmd.Flags().String("encounter", "", "Source encounter id")
	cmd.Flags().String("payer", "", "Payer id")
	cmd.Flags().Float64("amount", 0, "Total billed amount")
	cmd.Flags().StringSlice("icd", nil, "ICD-10 codes")
	cmd.Flags().StringSlice("cpt", nil, "CPT codes")
	cmd.MarkFlagRequired("patient")
	return cmd
}

func claimsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List claims",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			p := claim.ListParams{}
			p.PatientID, _ = cmd.Flags().GetString("patient")
			p.Status, _ = cmd.Flags().GetString("status")
			p.Page, _ = cmd.Flags().GetInt("page")
			p.PerPage, _ = cmd.Flags().GetInt("per-page")

			result, err := a.claims.List(cmd.Context(), p)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPATIENT\tSTATUS\tPAYER\tAMOUNT")
			for _, c := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t$%.2f\n",
					c.ID, c.PatientID, c.Status, deref(c.PayerName), c.TotalAmount)
			}
			w.Flush()
			fmt.Printf("Page %d of %d (%d total)\n", result.Page, result.TotalPages, result.Total)
			return nil
		},
	}
	cmd.Flags().String("patient", "", "Filter by patient id")
	cmd.Flags().String("status", "", "Filter by status")
	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("per-page", 20, "Results per page")
	return cmd
}

func claimsSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id>",
		Short: "Submit a claim to its payer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			c, err := a.claims.Submit(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Claim %s is now %s\n", c.ID, c.Status)
			return nil
		},
	}
}

func claimsDenialsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "denials <id>",
		Short: "Show a claim's denial history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			denials, err := a.claims.Denials(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(denials) == 0 {
				fmt.Println("No denials on record.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tREASON\tDENIED AT")
			for _, d := range denials {
				deniedAt := ""
				if d.DeniedAt != nil {
					deniedAt = d.DeniedAt.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.DenialCode, d.Reason, deniedAt)
			}
			return w.Flush()
		},
	}
}

func claimsEligibilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-eligibility",
		Short: "Verify payer eligibility for a patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			req := claim.EligibilityRequest{}
			req.PatientID, _ = cmd.Flags().GetString("patient")
			req.PayerID, _ = cmd.Flags().GetString("payer")
			req.ServiceDate, _ = cmd.Flags().GetString("service-date")

			res, err := a.claims.CheckEligibility(cmd.Context(), req)
			if err != nil {
				return err
			}
			if res.Eligible {
				fmt.Printf("Eligible with %s\n", deref(res.PlanName))
				if res.CopayAmount != nil {
					fmt.Printf("Copay: $%.2f\n", *res.CopayAmount)
				}
			} else {
				fmt.Printf("Not eligible: %s\n", deref(res.Detail))
			}
			return nil
		},
	}
	cmd.Flags().String("patient", "", "Patient id")
	cmd.Flags().String("payer", "", "Payer id")
	cmd.Flags().String("service-date", "", "Date of service (YYYY-MM-DD)")
	cmd.MarkFlagRequired("patient")
	cmd.MarkFlagRequired("payer")
	return cmd
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/falconrcm/console/internal/domain/patient"
)

func patientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Manage patients",
	}
	cmd.AddCommand(patientsListCmd())
	cmd.AddCommand(patientsShowCmd())
	cmd.AddCommand(patientsCreateCmd())
	cmd.AddCommand(patientsDeleteCmd())
	cmd.AddCommand(patientsEncountersCmd())
	return cmd
}

func patientsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			page, _ := cmd.Flags().GetInt("page")
			perPage, _ := cmd.Flags().GetInt("per-page")
			search, _ := cmd.Flags().GetString("search")

			result, err := a.patients.List(cmd.Context(), patient.ListParams{Page: page, PerPage: perPage, Search: search})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDOB\tPAYER\tMEMBER ID")
			for _, p := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.FullName(), p.DateOfBirth, deref(p.PayerName), deref(p.MemberID))
			}
			w.Flush()
			fmt.Printf("Page %d of %d (%d total)\n", result.Page, result.TotalPages, result.Total)
			return nil
		},
	}
	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("per-page", 20, "Results per page")
	cmd.Flags().String("search", "", "Filter by name")
	return cmd
}

func patientsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			p, err := a.patients.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "ID:\t%s\n", p.ID)
			fmt.Fprintf(w, "Name:\t%s\n", p.FullName())
			fmt.Fprintf(w, "DOB:\t%s\n", p.DateOfBirth)
			fmt.Fprintf(w, "Gender:\t%s\n", deref(p.Gender))
			fmt.Fprintf(w, "Email:\t%s\n", deref(p.Email))
			fmt.Fprintf(w, "Phone:\t%s\n", deref(p.Phone))
			fmt.Fprintf(w, "Payer:\t%s\n", deref(p.PayerName))
			fmt.Fprintf(w, "Member ID:\t%s\n", deref(p.MemberID))
			return w.Flush()
		},
	}
}

func patientsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			in := patient.CreateInput{}
			in.FirstName, _ = cmd.Flags().GetString("first-name")
			in.LastName, _ = cmd.Flags().GetString("last-name")
			in.DateOfBirth, _ = cmd.Flags().GetString("dob")
			in.Gender = flagPtr(cmd, "gender")
			in.Email = flagPtr(cmd, "email")
			in.Phone = flagPtr(cmd, "phone")
			in.PayerID = flagPtr(cmd, "payer-id")
			in.MemberID = flagPtr(cmd, "member-id")

			p, err := a.patients.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Printf("Created patient %s (%s)\n", p.FullName(), p.ID)
			return nil
		},
	}
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("dob", "", "Date of birth (YYYY-MM-DD)")
	cmd.Flags().String("gender", "", "Gender")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("payer-id", "", "Payer identifier")
	cmd.Flags().String("member-id", "", "Payer member id")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	return cmd
}

func patientsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			return a.patients.Delete(cmd.Context(), args[0])
		},
	}
}

func patientsEncountersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encounters <id>",
		Short: "List a patient's encounters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			encs, err := a.patients.Encounters(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printEncounters(encs)
			return nil
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// flagPtr returns nil for unset string flags so optional fields stay absent
// from the request payload.
func flagPtr(cmd *cobra.Command, name string) *string {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return nil
	}
	return &v
}

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/falconrcm/console/internal/domain/encounter"
)

func encountersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encounters",
		Short: "Manage encounters",
	}
	cmd.AddCommand(encountersListCmd())
	cmd.AddCommand(encountersShowCmd())
	cmd.AddCommand(encountersCreateCmd())
	cmd.AddCommand(encountersProcessCmd())
	return cmd
}

func encountersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one encounter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			e, err := a.encounters.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "ID:\t%s\n", e.ID)
			fmt.Fprintf(w, "Patient:\t%s\n", e.PatientID)
			fmt.Fprintf(w, "Status:\t%s\n", e.Status)
			fmt.Fprintf(w, "Date:\t%s\n", e.ServiceDate)
			fmt.Fprintf(w, "Type:\t%s\n", deref(e.EncounterType))
			fmt.Fprintf(w, "Provider:\t%s\n", deref(e.ProviderName))
			fmt.Fprintf(w, "Complaint:\t%s\n", deref(e.ChiefComplaint))
			fmt.Fprintf(w, "ICD:\t%s\n", strings.Join(e.ICDCodes, ", "))
			fmt.Fprintf(w, "CPT:\t%s\n", strings.Join(e.CPTCodes, ", "))
			return w.Flush()
		},
	}
}

func encountersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List encounters",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			p := encounter.ListParams{}
			p.PatientID, _ = cmd.Flags().GetString("patient")
			p.Status, _ = cmd.Flags().GetString("status")
			p.Page, _ = cmd.Flags().GetInt("page")
			p.PerPage, _ = cmd.Flags().GetInt("per-page")

			result, err := a.encounters.List(cmd.Context(), p)
			if err != nil {
				return err
			}
			printEncounters(result.Data)
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

func encountersCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an encounter",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			in := encounter.CreateInput{}
			in.PatientID, _ = cmd.Flags().GetString("patient")
			in.ServiceDate, _ = cmd.Flags().GetString("service-date")
			in.EncounterType = flagPtr(cmd, "type")
			in.ProviderName = flagPtr(cmd, "provider")
			in.ChiefComplaint = flagPtr(cmd, "complaint")
			in.Notes = flagPtr(cmd, "notes")

			e, err := a.encounters.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Printf("Created encounter %s for patient %s\n", e.ID, e.PatientID)
			return nil
		},
	}
	cmd.Flags().String("patient", "", "Patient id")
	cmd.Flags().String("service-date", "", "Date of service (YYYY-MM-DD)")
	cmd.Flags().String("type", "", "Encounter type")
	cmd.Flags().String("provider", "", "Provider name")
	cmd.Flags().String("complaint", "", "Chief complaint")
	cmd.Flags().String("notes", "", "Clinical notes")
	cmd.MarkFlagRequired("patient")
	return cmd
}

func encountersProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <id>",
		Short: "Run AI processing on an encounter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")

			res, err := a.encounters.Process(cmd.Context(), args[0], force)
			if err != nil {
				return err
			}
			fmt.Printf("Encounter %s: %s\n", res.EncounterID, res.Status)
			if len(res.ICDCodes) > 0 {
				fmt.Printf("ICD: %s\n", strings.Join(res.ICDCodes, ", "))
			}
			if len(res.CPTCodes) > 0 {
				fmt.Printf("CPT: %s\n", strings.Join(res.CPTCodes, ", "))
			}
			if res.Summary != nil {
				fmt.Printf("Summary: %s\n", *res.Summary)
			}
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Reprocess an already-processed encounter")
	return cmd
}

func printEncounters(encs []encounter.Encounter) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPATIENT\tDATE\tSTATUS\tPROVIDER\tCODES")
	for _, e := range encs {
		codes := strings.Join(append(append([]string{}, e.ICDCodes...), e.CPTCodes...), ",")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.PatientID, e.ServiceDate, e.Status, deref(e.ProviderName), codes)
	}
	w.Flush()
}

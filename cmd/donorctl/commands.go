package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mealshare/internal/apiclient"
	"mealshare/internal/donation/models"
	"mealshare/internal/donation/service"
	"mealshare/internal/donation/store"
	"mealshare/internal/donation/validation"
	"mealshare/internal/donation/workflow"
	"mealshare/internal/platform/logger"
	dErrors "mealshare/pkg/domain-errors"
)

const (
	defaultAPI     = "http://localhost:5000"
	maxOTPAttempts = 3
	sessionTTL     = 30 * time.Minute
)

var errInvalidRecord = errors.New("record is invalid")

// donationFile is the JSON document the validate and donate commands read.
type donationFile struct {
	Record models.DonorRecord   `json:"record"`
	Terms  models.DonationTerms `json:"terms"`
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "donorctl",
		Short:         "Validate donor records and submit donations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.AddCommand(newValidateCmd(), newAmountsCmd(), newDonateCmd())
	return withErrorOutput(root)
}

// withErrorOutput reports a failing subcommand's error on stderr.
func withErrorOutput(root *cobra.Command) *cobra.Command {
	for _, sub := range root.Commands() {
		run := sub.RunE
		if run == nil {
			continue
		}
		sub.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if err != nil && !errors.Is(err, errInvalidRecord) {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
			return err
		}
	}
	return root
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a donor record and donation terms",
		Long:  "Reads a JSON document {\"record\": {...}, \"terms\": {...}} and prints the result for every field. Exits non-zero when any field fails.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDonationFile(args[0])
			if err != nil {
				return err
			}
			result := validation.Validate(doc.Record, time.Now()).Merge(validation.ValidateTerms(doc.Terms))
			printResult(cmd.OutOrStdout(), result)
			if !result.Valid() {
				return errInvalidRecord
			}
			fmt.Fprintln(cmd.OutOrStdout(), "record is valid")
			return nil
		},
	}
}

func newAmountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "amounts",
		Short: "List the preset donation amounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options := models.AmountOptions()
			frequencies := make([]string, 0, len(options))
			for f := range options {
				frequencies = append(frequencies, string(f))
			}
			sort.Strings(frequencies)
			for _, f := range frequencies {
				amounts := append([]string{}, options[models.Frequency(f)]...)
				amounts = append(amounts, models.AmountOther)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", f, strings.Join(amounts, ", "))
			}
			return nil
		},
	}
}

func newDonateCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "donate FILE",
		Short: "Verify the donor's email by OTP and submit the donation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDonationFile(args[0])
			if err != nil {
				return err
			}
			client := apiclient.New(v.GetString("api"), apiclient.WithTimeout(v.GetDuration("timeout")))
			log := logger.New(cmd.ErrOrStderr(), "text", v.GetString("log-level"))
			svc := service.New(store.NewInMemory(sessionTTL), client, client, service.WithLogger(log))
			return runDonate(cmd, svc, doc)
		},
	}
	cmd.Flags().String("api", defaultAPI, "base URL of the site API (env API_BASE_URL)")
	cmd.Flags().Duration("timeout", apiclient.DefaultTimeout, "timeout for each API call")
	cmd.Flags().String("log-level", "warn", "log level for workflow diagnostics")
	_ = v.BindPFlags(cmd.Flags())
	_ = v.BindEnv("api", "API_BASE_URL")
	return cmd
}

func runDonate(cmd *cobra.Command, svc *service.Service, doc donationFile) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	result := svc.ValidateRecord(ctx, doc.Record, doc.Terms)
	if !result.Valid() {
		printResult(out, result)
		return errInvalidRecord
	}

	record, terms := doc.Record.AsUpdate(), doc.Terms.AsUpdate()
	snap, err := svc.Start(ctx, &service.UpdateRequest{Record: &record, Terms: &terms})
	if err != nil {
		return err
	}

	if _, err := svc.RequestOTP(ctx, snap.ID); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (%s)\n", workflow.MsgOTPSent, doc.Record.Email)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	verified := false
	for attempt := 1; attempt <= maxOTPAttempts && !verified; attempt++ {
		fmt.Fprint(out, "Enter OTP: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return errors.New("no OTP entered")
		}
		_, err := svc.VerifyOTP(ctx, snap.ID, strings.TrimSpace(scanner.Text()))
		switch {
		case err == nil:
			verified = true
			fmt.Fprintln(out, workflow.MsgEmailVerified)
		case dErrors.HasCode(err, dErrors.CodeInvalidOTP), dErrors.HasCode(err, dErrors.CodeValidation):
			fmt.Fprintln(out, errorMessage(err))
		default:
			return err
		}
	}
	if !verified {
		return fmt.Errorf("email not verified after %d attempts", maxOTPAttempts)
	}

	final, err := svc.Submit(ctx, snap.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, final.Message)
	return nil
}

func readDonationFile(path string) (donationFile, error) {
	var doc donationFile
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return doc, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.Terms.Frequency == "" {
		doc.Terms.Frequency = models.DefaultTerms().Frequency
	}
	return doc, nil
}

func printResult(w io.Writer, result validation.Result) {
	fields := make([]string, 0, len(result))
	for name := range result {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	for _, name := range fields {
		fr, _ := result.Field(name)
		if fr.Valid {
			fmt.Fprintf(w, "  ok    %s\n", name)
			continue
		}
		fmt.Fprintf(w, "  FAIL  %s: %s\n", name, fr.Message)
	}
}

func errorMessage(err error) string {
	if de, ok := dErrors.As(err); ok {
		return de.Message
	}
	return err.Error()
}

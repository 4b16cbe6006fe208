// Package main provides the iniutil CLI, a small wrapper around the ini
// package for inspecting and editing INI files from the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gubenkoved/simplini"
)

var (
	flagFile     string
	flagEncoding string
	flagSection  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "iniutil",
		Short:         "Inspect and edit INI files",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "path to the INI file")
	rootCmd.PersistentFlags().StringVar(&flagEncoding, "encoding", "", "IANA name of the file's character encoding (default UTF-8)")
	rootCmd.MarkPersistentFlagRequired("file")

	rootCmd.AddCommand(
		newGetCmd(),
		newSetCmd(),
		newDeleteCmd(),
		newListCmd(),
		newSectionsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func loadDoc(ctx context.Context) (*ini.Document, error) {
	return ini.LoadFile(ctx, flagFile, ini.Options{
		Flavour:  ini.DefaultFlavour(),
		Encoding: flagEncoding,
	})
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDoc(cmd.Context())
			if err != nil {
				return err
			}
			value, err := doc.Configuration().GetValue(args[0], flagSection)
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		},
	}
	cmd.Flags().StringVarP(&flagSection, "section", "s", "", "section name (default unnamed section)")
	return cmd
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a key to a value, creating it if absent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := loadDoc(ctx)
			if err != nil {
				return err
			}
			doc.Configuration().SetValue(args[0], args[1], flagSection)
			return doc.Save(ctx, flagFile, 0o644)
		},
	}
	cmd.Flags().StringVarP(&flagSection, "section", "s", "", "section name (default unnamed section)")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := loadDoc(ctx)
			if err != nil {
				return err
			}
			section, err := doc.Configuration().Section(flagSection)
			if err != nil {
				return err
			}
			if !section.DeleteOption(args[0]) {
				return fmt.Errorf("key %q not found", args[0])
			}
			return doc.Save(ctx, flagFile, 0o644)
		},
	}
	cmd.Flags().StringVarP(&flagSection, "section", "s", "", "section name (default unnamed section)")
	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List keys and values in a section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDoc(cmd.Context())
			if err != nil {
				return err
			}
			section, err := doc.Configuration().Section(flagSection)
			if err != nil {
				return err
			}
			for _, opt := range section.Options() {
				fmt.Printf("%s=%s\n", opt.Key, opt.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&flagSection, "section", "s", "", "section name (default unnamed section)")
	return cmd
}

func newSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List section names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDoc(cmd.Context())
			if err != nil {
				return err
			}
			for _, section := range doc.Configuration().Sections() {
				fmt.Println(section.Name)
			}
			return nil
		},
	}
}

package main

import (
	"github.com/pthm/hxmount"
	"github.com/spf13/cobra"
)

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <token>",
		Short: "Verify and decode an hx-props stamp",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			enc, err := newEncoder(v)
			if err != nil {
				return err
			}

			p, err := hxmount.DecodeStamp(enc, args[0], v.GetBool("sensitive"))
			if err != nil {
				return err
			}

			return writeValue(cmd.OutOrStdout(), v.GetString("format"), p)
		},
	}

	return cmd
}

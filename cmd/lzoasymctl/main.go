// SPDX-License-Identifier: MIT

// Command lzoasymctl is a small debug tool for the lzo-asym packet framing
// layer: it reads one framed packet and writes its decoded payload to
// stdout, or reports why the packet was rejected.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	lzoasym "github.com/binarykorra/openvpn3"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lzoasymctl",
		Short: "Inspect and decode lzo-asym framed packets",
	}
	cmd.AddCommand(newDecodeCmd())
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var (
		supportSwap bool
		scratchSize int
	)

	cmd := &cobra.Command{
		Use:   "decode [FILE]",
		Short: "Decode one framed packet and print its payload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("lzoasymctl: %w", err)
				}
				defer f.Close()
				in = f
			}

			buf, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("lzoasymctl: reading packet: %w", err)
			}

			c := lzoasym.NewCompressor(lzoasym.Config{SupportSwap: supportSwap}, scratchSize, nil)
			payload, err := c.Inbound(buf)
			if err != nil {
				return fmt.Errorf("lzoasymctl: decode failed: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(payload)
			return err
		},
	}

	cmd.Flags().BoolVar(&supportSwap, "support-swap", true, "set Config.SupportSwap (outbound only; swapped inbound tags are decoded either way)")
	cmd.Flags().IntVar(&scratchSize, "scratch-size", 1<<16, "size of the decode scratch buffer in bytes")

	return cmd
}

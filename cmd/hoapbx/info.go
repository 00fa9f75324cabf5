// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"path"
	"strings"
	"text/tabwriter"

	"github.com/ik5/hoapbx/ambisonic"
	"github.com/ik5/hoapbx/decoder"
	"github.com/ik5/hoapbx/fetch"
	"github.com/ik5/hoapbx/formats"
	"github.com/ik5/hoapbx/session"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show supported formats, channel layout and decoder details",
	RunE:  runInfo,
}

func init() {
	f := infoCmd.Flags()
	f.Int("order", 1, "ambisonic order")
	f.String("decoder-file", "", "decode matrix to inspect")
	f.String("src", "", "sample to list the HOA file names for")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, _ []string) error {
	order, _ := cmd.Flags().GetInt("order")
	decoderFile, _ := cmd.Flags().GetString("decoder-file")
	src, _ := cmd.Flags().GetString("src")

	channels, err := ambisonic.ChannelCount(order)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "formats: %s\n", strings.Join(formats.NewRegistry().Formats(), ", "))
	fmt.Fprintf(out, "order %d: %d channels\n", order, channels)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ACN\tl\tm")
	for acn := range channels {
		l, m := ambisonic.Degree(acn)
		fmt.Fprintf(tw, "%d\t%d\t%d\n", acn, l, m)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if src != "" && order > 1 {
		ext := path.Ext(src)
		base := strings.TrimSuffix(src, ext)
		fmt.Fprintln(out, "hoa files:")
		for _, name := range session.HOAFileNames(base, ext, channels) {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}

	if decoderFile == "" {
		return nil
	}
	doc, err := fetch.ReadAll(cmd.Context(), fetch.Default{}, decoderFile)
	if err != nil {
		return err
	}
	matrix, err := decoder.ParseMatrix(doc, channels)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "decoder %s: %d speakers, %d connections\n", decoderFile, len(matrix), len(matrix)*channels)
	return nil
}

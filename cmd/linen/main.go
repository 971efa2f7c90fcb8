package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/sw965/linen/activation"
	"github.com/sw965/linen/dtype"
	"github.com/sw965/linen/layer"
	"github.com/sw965/linen/tensor"
)

func parseArray(args []string, dtypeName string) (tensor.Array, error) {
	d, err := dtype.Parse(dtypeName)
	if err != nil {
		return tensor.Array{}, err
	}
	data := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return tensor.Array{}, fmt.Errorf("value %d: %w", i, err)
		}
		data[i] = v
	}
	return tensor.New(tensor.Shape{len(data)}, d, data)
}

func printArray(cmd *cobra.Command, y tensor.Array) {
	// float16 の値は float32 で正確に表せる
	bitSize := 32
	if y.DType == dtype.Float64 {
		bitSize = 64
	}
	for i, v := range y.Data {
		if i > 0 {
			fmt.Fprint(cmd.OutOrStdout(), " ")
		}
		fmt.Fprint(cmd.OutOrStdout(), strconv.FormatFloat(v, 'g', -1, bitSize))
	}
	fmt.Fprintln(cmd.OutOrStdout())
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the activation names",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range activation.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func newApplyCmd() *cobra.Command {
	var name, dtypeName string
	cmd := &cobra.Command{
		Use:   "apply VALUE...",
		Short: "Apply an activation to a vector",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := activation.Lookup(name)
			if err != nil {
				return err
			}
			x, err := parseArray(args, dtypeName)
			if err != nil {
				return err
			}
			y, err := f(x)
			if err != nil {
				return err
			}
			printArray(cmd, y)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "fn", "f", "relu", "activation name")
	cmd.Flags().StringVarP(&dtypeName, "dtype", "d", "float32", "element dtype")
	return cmd
}

func newPReLUCmd() *cobra.Command {
	var slope float64
	var dtypeName string
	cmd := &cobra.Command{
		Use:   "prelu VALUE...",
		Short: "Apply a PReLU with the given initial slope",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseArray(args, dtypeName)
			if err != nil {
				return err
			}
			l := layer.PReLU{NegativeSlopeInit: slope}
			y, err := l.Forward(l.InitState(), x)
			if err != nil {
				return err
			}
			printArray(cmd, y)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&slope, "slope", "s", layer.DefaultNegativeSlopeInit, "initial negative slope")
	cmd.Flags().StringVarP(&dtypeName, "dtype", "d", "float32", "element dtype")
	return cmd
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "linen",
		Short:         "Activation functions and PReLU",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newListCmd(), newApplyCmd(), newPReLUCmd())
	return root
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("linen: ")
	if err := newRootCmd().Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

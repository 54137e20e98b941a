// Copyright 2025 megablocks-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command permtune measures padded gather/scatter throughput for a grid of
// chunk widths and batch grains and reports the fastest configuration per
// column count.
//
// Usage:
//
//	permtune --rows 4096 --cols 512,1024,4096 --dtype f16
//	permtune --chunks 64,128,256 --grains 2,4 --iters 50 -v=3
//
// The chosen values can be exported as PERMUTE_CHUNK_WIDTH and
// PERMUTE_GRAIN; they never change results, only speed.
package main

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func main() {
	defer klog.Flush()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := defaultOptions()
	cmd := &cobra.Command{
		Use:           "permtune",
		Short:         "Benchmark padded gather/scatter configurations",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			results, err := run(opts)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), opts, results)
		},
	}
	opts.addFlags(cmd.Flags())

	klogFlags := goflag.NewFlagSet("klog", goflag.ExitOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)
	return cmd
}

/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/notargets/gocell/InputParameters"
	"github.com/notargets/gocell/discretise"
	"github.com/notargets/gocell/integrate"
	"github.com/notargets/gocell/meshes"
	"github.com/notargets/gocell/submodels"
	"github.com/spf13/cobra"
)

// CellCmd represents the cell command
var CellCmd = &cobra.Command{
	Use:   "cell",
	Short: "Assemble, discretise and integrate a standard cell model",
	Long: `
Builds the submodel registry selected by the input parameters,
assembles the continuous model, discretises it with the finite volume
method over the standard three domain cell mesh and integrates it,

gocell cell -I cell.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		ip := defaultInput()
		if ipFile, _ := cmd.Flags().GetString("inputParametersFile"); len(ipFile) != 0 {
			data, err := os.ReadFile(ipFile)
			if err != nil {
				fmt.Printf("error reading input parameters file: %s\n", err.Error())
				os.Exit(1)
			}
			if err := ip.Parse(data); err != nil {
				fmt.Printf("error parsing input parameters file: %s\n", err.Error())
				os.Exit(1)
			}
		}
		if n, _ := cmd.Flags().GetInt("n"); n != 0 {
			ip.CellsPerDomain = n
		}
		ip.Print()
		if err := RunCell(ip); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(CellCmd)
	CellCmd.Flags().StringP("inputParametersFile", "I", "", "YAML input parameters file")
	CellCmd.Flags().IntP("n", "n", 0, "cells per domain, overrides the input file")
}

func defaultInput() *InputParameters.InputParameters {
	return &InputParameters.InputParameters{
		Title:                 "Standard cell",
		CellsPerDomain:        40,
		FinalTime:             1,
		TimeStep:              1.e-3,
		NegativeElectrodeType: "porous",
		Porosity:              "reaction driven",
		Swelling:              "none",
	}
}

// RunCell wires the full pipeline: registry factory, assembly,
// discretisation, integration, summary. All physics lives in the
// submodels; this is plumbing only.
func RunCell(ip *InputParameters.InputParameters) error {
	params := submodels.DefaultParameters()
	for name, val := range ip.PhysicalParameters {
		params[name] = val
	}
	opts := &submodels.Options{
		NegativeElectrodeType: ip.NegativeElectrodeType,
		Porosity:              ip.Porosity,
		Swelling:              ip.Swelling,
		ParticleResolved:      ip.ParticleResolved,
	}
	reg, err := submodels.NewStandardCell(params, opts)
	if err != nil {
		return err
	}
	m, err := submodels.Assemble(ip.Title, reg)
	if err != nil {
		return err
	}

	mesh := meshes.NewCellMesh(ip.CellsPerDomain)
	for _, pair := range opts.ProductDomains() {
		if err := mesh.Product(pair[0], pair[1]); err != nil {
			return err
		}
	}
	method := discretise.FiniteVolume{}
	spatialMethods := make(map[string]discretise.SpatialMethod)
	for _, domain := range mesh.Domains() {
		spatialMethods[domain] = method
	}
	dm, err := discretise.New(mesh, spatialMethods).ProcessModel(m)
	if err != nil {
		return err
	}
	fmt.Printf("state vector length = %d\n", dm.Len())
	for _, name := range dm.VariableNames() {
		sl, _ := dm.Slice(name)
		fmt.Printf("  y[%4d:%4d] = %s\n", sl.Start, sl.Stop, name)
	}

	sol, err := integrate.RK4(dm, ip.FinalTime, ip.TimeStep, 100)
	if err != nil {
		return err
	}
	last := len(sol.T) - 1
	fmt.Printf("integrated to t = %8.4f in %d steps\n", sol.T[last], last)
	if sol.Terminated != "" {
		fmt.Printf("terminated by event: %s\n", sol.Terminated)
	}
	y := sol.Y.Row(last).Data()
	for _, name := range dm.VariableNames() {
		vals, _ := dm.Extract(name, y)
		min, max := vals[0], vals[0]
		for _, v := range vals {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		fmt.Printf("%-50s min = %8.5f, max = %8.5f\n", name, min, max)
	}
	return nil
}

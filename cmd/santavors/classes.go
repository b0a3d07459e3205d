package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/polarforge/santavors/internal/balance"
)

var flagClassesConfig string

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List playable classes",
	Long:  `Shows every playable class with its base stats and weapon.`,
	Run:   runClasses,
}

func init() {
	classesCmd.Flags().StringVar(&flagClassesConfig, "config", "", "Path to custom balance YAML")
}

func runClasses(cmd *cobra.Command, args []string) {
	tables, err := balance.Load(flagClassesConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading balance data: %v\n", err)
		os.Exit(1)
	}

	classes := tables.Classes()
	fmt.Println("Playable classes:")
	fmt.Println()

	fmt.Printf("  %-10s  %-14s  %-5s  %-5s  %-5s  %-5s  %s\n", "ID", "Name", "HP", "SPD", "ROF", "DMG", "Weapon")
	fmt.Printf("  %-10s  %-14s  %-5s  %-5s  %-5s  %-5s  %s\n", "--", "----", "--", "---", "---", "---", "------")

	for _, c := range classes {
		weapon := c.WeaponType
		if w, ok := tables.Weapon(c.WeaponType); ok {
			weapon = w.Name
		}
		marker := " "
		if c.ID == tables.DefaultClassID() {
			marker = "*"
		}
		fmt.Printf("  %-10s %s%-14s  %-5.0f  %-5.0f  %-5.1f  %-5.0f  %s\n",
			c.ID, marker, c.Name, c.HP, c.Speed, c.ROF, c.Damage, weapon)
	}

	fmt.Println()
	fmt.Println("* default class. Run 'santavors play --class <id>' to use one directly.")
}

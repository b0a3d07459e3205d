package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/polarforge/santavors/internal/balance"
	"github.com/polarforge/santavors/internal/meta"
	"github.com/polarforge/santavors/internal/storage"
)

var (
	flagBuyWeapon string
	flagBuySkin   string
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Spend Nice Points on weapons and skins",
	Long: `View the shop and buy unlocks with Nice Points earned in runs.

Without flags, lists everything on offer and your balance.

Examples:
  santavors shop
  santavors shop --buy-weapon star_caster
  santavors shop --buy-skin midnight_blue`,
	Run: runShop,
}

func init() {
	shopCmd.Flags().StringVar(&flagBuyWeapon, "buy-weapon", "", "Buy the weapon with this id")
	shopCmd.Flags().StringVar(&flagBuySkin, "buy-skin", "", "Buy the skin with this id")
}

func runShop(cmd *cobra.Command, args []string) {
	tables, err := balance.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading balance data: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	economy := meta.NewEconomy(store, nil)
	economy.Load()

	if flagBuyWeapon != "" {
		buyWeapon(tables, economy, flagBuyWeapon)
		return
	}
	if flagBuySkin != "" {
		buySkin(tables, economy, flagBuySkin)
		return
	}

	listShop(tables, economy)
}

func listShop(tables *balance.Store, economy *meta.Economy) {
	fmt.Printf("Nice Points: %d\n", economy.NicePoints())
	fmt.Println()

	fmt.Println("Weapons:")
	for _, w := range tables.Weapons() {
		if w.Cost == 0 {
			continue
		}
		status := fmt.Sprintf("%d NP", w.Cost)
		if economy.HasWeapon(w.ID) {
			status = "owned"
		}
		fmt.Printf("  %-14s  %-22s  %s\n", w.ID, w.Name, status)
	}

	fmt.Println()
	fmt.Println("Skins:")
	for _, s := range tables.Skins() {
		status := fmt.Sprintf("%d NP", s.Cost)
		if economy.HasSkin(s.ID) {
			status = "owned"
		}
		fmt.Printf("  %-14s  %-22s  %s\n", s.ID, s.Name, status)
	}

	fmt.Println()
	fmt.Println("Buy with 'santavors shop --buy-weapon <id>' or '--buy-skin <id>'.")
}

func buyWeapon(tables *balance.Store, economy *meta.Economy, id string) {
	w, ok := tables.Weapon(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown weapon %q\n", id)
		os.Exit(1)
	}
	if economy.HasWeapon(id) {
		fmt.Printf("%s is already unlocked.\n", w.Name)
		return
	}
	if !economy.SpendNicePoints(w.Cost) {
		fmt.Fprintf(os.Stderr, "Not enough Nice Points: %s costs %d, you have %d.\n",
			w.Name, w.Cost, economy.NicePoints())
		os.Exit(1)
	}
	economy.UnlockWeapon(id)
	economy.Save()
	fmt.Printf("Unlocked %s! Remaining balance: %d NP\n", w.Name, economy.NicePoints())
}

func buySkin(tables *balance.Store, economy *meta.Economy, id string) {
	s, ok := tables.Skin(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown skin %q\n", id)
		os.Exit(1)
	}
	if economy.HasSkin(id) {
		fmt.Printf("%s is already unlocked.\n", s.Name)
		return
	}
	if !economy.SpendNicePoints(s.Cost) {
		fmt.Fprintf(os.Stderr, "Not enough Nice Points: %s costs %d, you have %d.\n",
			s.Name, s.Cost, economy.NicePoints())
		os.Exit(1)
	}
	economy.UnlockSkin(id)
	economy.Save()
	fmt.Printf("Unlocked %s! Remaining balance: %d NP\n", s.Name, economy.NicePoints())
}

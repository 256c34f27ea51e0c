package cmd

import (
	"github.com/spf13/cobra"

	"procurement.GO/core/registry"
)

// Register adds a command. Call from init() in custom packages. Panics once Apply has run.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked (register only during init before Execute)")
	}
	list := registered()
	list = append(list, c)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, list)
}

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Apply attaches registered commands to the root command once and locks the registry.
func Apply() {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		return
	}
	rootCmd.AddCommand(registered()...)
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}

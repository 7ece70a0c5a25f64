package autofix

import (
	"sort"

	"github.com/autofix/pkg/models"
)

// knownImports is the closed catalog of symbols the engine can import on its own.
// Platform types first, then the standard library.
var knownImports = map[string]string{
	// plugin lifecycle
	"JavaPlugin": "import org.bukkit.plugin.java.JavaPlugin;",
	"Plugin":     "import org.bukkit.plugin.Plugin;",
	"Bukkit":     "import org.bukkit.Bukkit;",

	// events
	"Listener":                  "import org.bukkit.event.Listener;",
	"EventHandler":              "import org.bukkit.event.EventHandler;",
	"EventPriority":             "import org.bukkit.event.EventPriority;",
	"Event":                     "import org.bukkit.event.Event;",
	"Cancellable":               "import org.bukkit.event.Cancellable;",
	"PlayerJoinEvent":           "import org.bukkit.event.player.PlayerJoinEvent;",
	"PlayerQuitEvent":           "import org.bukkit.event.player.PlayerQuitEvent;",
	"PlayerInteractEvent":       "import org.bukkit.event.player.PlayerInteractEvent;",
	"PlayerMoveEvent":           "import org.bukkit.event.player.PlayerMoveEvent;",
	"PlayerRespawnEvent":        "import org.bukkit.event.player.PlayerRespawnEvent;",
	"AsyncPlayerChatEvent":      "import org.bukkit.event.player.AsyncPlayerChatEvent;",
	"BlockBreakEvent":           "import org.bukkit.event.block.BlockBreakEvent;",
	"BlockPlaceEvent":           "import org.bukkit.event.block.BlockPlaceEvent;",
	"EntityDamageEvent":         "import org.bukkit.event.entity.EntityDamageEvent;",
	"EntityDamageByEntityEvent": "import org.bukkit.event.entity.EntityDamageByEntityEvent;",
	"EntityDeathEvent":          "import org.bukkit.event.entity.EntityDeathEvent;",
	"PlayerDeathEvent":          "import org.bukkit.event.entity.PlayerDeathEvent;",
	"InventoryClickEvent":       "import org.bukkit.event.inventory.InventoryClickEvent;",

	// commands
	"Command":         "import org.bukkit.command.Command;",
	"CommandSender":   "import org.bukkit.command.CommandSender;",
	"CommandExecutor": "import org.bukkit.command.CommandExecutor;",
	"TabCompleter":    "import org.bukkit.command.TabCompleter;",
	"PluginCommand":   "import org.bukkit.command.PluginCommand;",

	// configuration
	"FileConfiguration":    "import org.bukkit.configuration.file.FileConfiguration;",
	"YamlConfiguration":    "import org.bukkit.configuration.file.YamlConfiguration;",
	"ConfigurationSection": "import org.bukkit.configuration.ConfigurationSection;",

	// entities and world
	"Player":       "import org.bukkit.entity.Player;",
	"Entity":       "import org.bukkit.entity.Entity;",
	"LivingEntity": "import org.bukkit.entity.LivingEntity;",
	"EntityType":   "import org.bukkit.entity.EntityType;",
	"Location":     "import org.bukkit.Location;",
	"World":        "import org.bukkit.World;",
	"Material":     "import org.bukkit.Material;",
	"ChatColor":    "import org.bukkit.ChatColor;",
	"Sound":        "import org.bukkit.Sound;",
	"GameMode":     "import org.bukkit.GameMode;",
	"Block":        "import org.bukkit.block.Block;",

	// inventory and scheduling
	"ItemStack":      "import org.bukkit.inventory.ItemStack;",
	"Inventory":      "import org.bukkit.inventory.Inventory;",
	"ItemMeta":       "import org.bukkit.inventory.meta.ItemMeta;",
	"BukkitRunnable": "import org.bukkit.scheduler.BukkitRunnable;",
	"BukkitTask":     "import org.bukkit.scheduler.BukkitTask;",

	// java.util
	"List":        "import java.util.List;",
	"ArrayList":   "import java.util.ArrayList;",
	"Map":         "import java.util.Map;",
	"HashMap":     "import java.util.HashMap;",
	"Set":         "import java.util.Set;",
	"HashSet":     "import java.util.HashSet;",
	"UUID":        "import java.util.UUID;",
	"Arrays":      "import java.util.Arrays;",
	"Collections": "import java.util.Collections;",
	"Optional":    "import java.util.Optional;",
	"Random":      "import java.util.Random;",
	"Objects":     "import java.util.Objects;",
	"Collectors":  "import java.util.stream.Collectors;",
	"Logger":      "import java.util.logging.Logger;",
	"Level":       "import java.util.logging.Level;",

	// java.io
	"File":        "import java.io.File;",
	"IOException": "import java.io.IOException;",
}

// LookupImport returns the import statement for symbol, if it is known.
func LookupImport(symbol string) (string, bool) {
	stmt, ok := knownImports[symbol]
	return stmt, ok
}

// ImportCatalog lists every known symbol sorted by name.
func ImportCatalog() []models.ImportEntry {
	entries := make([]models.ImportEntry, 0, len(knownImports))
	for symbol, stmt := range knownImports {
		entries = append(entries, models.ImportEntry{Symbol: symbol, Statement: stmt})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Symbol < entries[j].Symbol
	})
	return entries
}

// Package config loads the commission queue configuration. Channel and
// artist maps are explicit injected state; nothing here is mutated after
// startup.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/trickcandle/commissionqueue/internal/core/commission"
)

// Default channel names, overridable per deployment.
const (
	DefaultAnyArtistChannel = "any-artist-queue"
	DefaultVoidChannel      = "the-void"
	DefaultIntakeChannel    = "commission-intake"
	DefaultStatusChannel    = "queue-status"
	DefaultAuditChannel     = "bot-spam"
	DefaultBotName          = "CommissionQueueBot"
)

// SheetSource configures one published-CSV submission feed.
type SheetSource struct {
	URL       string `json:"url"`
	Specialty bool   `json:"specialty,omitempty"`
}

// Config represents the flat commission queue configuration.
type Config struct {
	DatabasePath string `json:"database_path"`
	BotName      string `json:"bot_name"`

	// ArtistChannels maps an artist name to that artist's queue channel.
	ArtistChannels map[string]string `json:"artist_channels"`
	// ArtistNames maps a chat member id to an artist name. Users absent
	// from this map cannot claim commissions.
	ArtistNames map[string]string `json:"artist_names"`

	AnyArtistChannel string `json:"any_artist_channel,omitempty"`
	VoidChannel      string `json:"void_channel,omitempty"`
	IntakeChannel    string `json:"intake_channel,omitempty"`
	StatusChannel    string `json:"status_channel,omitempty"`
	AuditChannel     string `json:"audit_channel,omitempty"`

	// RestrictRejectToAssignee, when true, only lets the currently assigned
	// artist reject a commission. Default false: any known user may reject.
	RestrictRejectToAssignee bool `json:"restrict_reject_to_assignee,omitempty"`

	Sheets []SheetSource `json:"sheets,omitempty"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BotName == "" {
		c.BotName = DefaultBotName
	}
	if c.AnyArtistChannel == "" {
		c.AnyArtistChannel = DefaultAnyArtistChannel
	}
	if c.VoidChannel == "" {
		c.VoidChannel = DefaultVoidChannel
	}
	if c.IntakeChannel == "" {
		c.IntakeChannel = DefaultIntakeChannel
	}
	if c.StatusChannel == "" {
		c.StatusChannel = DefaultStatusChannel
	}
	if c.AuditChannel == "" {
		c.AuditChannel = DefaultAuditChannel
	}
}

func (c *Config) validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("config: database_path is required")
	}
	if len(c.ArtistChannels) == 0 {
		return fmt.Errorf("config: at least one artist channel is required")
	}
	return nil
}

// RoutingTable builds the channel router's configuration.
func (c *Config) RoutingTable() commission.RoutingTable {
	return commission.RoutingTable{
		ArtistChannels:   c.ArtistChannels,
		AnyArtistChannel: c.AnyArtistChannel,
		VoidChannel:      c.VoidChannel,
		IntakeChannel:    c.IntakeChannel,
	}
}

// ArtistName resolves a chat member id to an artist name, empty when the
// user is not a configured artist.
func (c *Config) ArtistName(memberID string) string {
	return c.ArtistNames[memberID]
}

// ManagedChannels lists every channel the bot owns messages in: all artist
// queues plus the special routing channels. Used by the cleanup sweep.
func (c *Config) ManagedChannels() []string {
	seen := make(map[string]bool)
	var channels []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			channels = append(channels, name)
		}
	}
	for _, ch := range c.ArtistChannels {
		add(ch)
	}
	add(c.AnyArtistChannel)
	add(c.VoidChannel)
	add(c.IntakeChannel)
	return channels
}

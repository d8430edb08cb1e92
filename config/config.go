package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Search methods selectable via search.method. The choice is fixed when the
// index is built; it is never switched per query.
const (
	SearchMethodExact     = "exact"
	SearchMethodTokenized = "tokenized"
)

// Segmenter implementations selectable via search.segmenter.
const (
	SegmenterUnicode = "unicode"
	SegmenterCJK     = "cjk" // unicode segmentation plus Han bigrams
)

// Config holds all configuration for the blog engine
type Config struct {
	Site    SiteConfig    `mapstructure:"site"`
	Server  ServerConfig  `mapstructure:"server"`
	Content ContentConfig `mapstructure:"content"`
	Search  SearchConfig  `mapstructure:"search"`
}

// SiteConfig contains site-wide presentation settings
type SiteConfig struct {
	Title         string   `mapstructure:"title"`
	Description   string   `mapstructure:"description"`
	Keywords      string   `mapstructure:"keywords"`
	ColorScheme   string   `mapstructure:"color_scheme"`
	Language      string   `mapstructure:"language"`
	Copyright     string   `mapstructure:"copyright"`
	HLJSLanguages []string `mapstructure:"hljs_languages"`
	RecentPosts   int      `mapstructure:"recent_posts"`
	BaseURL       string   `mapstructure:"base_url"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address              string `mapstructure:"address"`
	DisableTemplateCache bool   `mapstructure:"disable_template_cache"`
}

// ContentConfig locates the on-disk inputs
type ContentConfig struct {
	PostsDir     string `mapstructure:"posts_dir"`
	TemplatesDir string `mapstructure:"templates_dir"`
	StaticDir    string `mapstructure:"static_dir"`
}

// SearchConfig controls which query engine is built and its input bounds
type SearchConfig struct {
	Method         string `mapstructure:"method"`
	Segmenter      string `mapstructure:"segmenter"`
	MaxQueryLength int    `mapstructure:"max_query_length"`
	CacheSize      int    `mapstructure:"cache_size"`
}

func (s SearchConfig) Validate() error {
	switch s.Method {
	case SearchMethodExact, SearchMethodTokenized:
	default:
		return fmt.Errorf("search.method must be %q or %q, got %q",
			SearchMethodExact, SearchMethodTokenized, s.Method)
	}
	switch s.Segmenter {
	case SegmenterUnicode, SegmenterCJK:
	default:
		return fmt.Errorf("search.segmenter must be %q or %q, got %q",
			SegmenterUnicode, SegmenterCJK, s.Segmenter)
	}
	if s.MaxQueryLength <= 0 {
		return fmt.Errorf("search.max_query_length must be > 0")
	}
	return nil
}

func (c ContentConfig) Validate() error {
	if c.PostsDir == "" {
		return fmt.Errorf("content.posts_dir must be set")
	}
	if c.TemplatesDir == "" {
		return fmt.Errorf("content.templates_dir must be set")
	}
	return nil
}

// Load reads the config file (YAML) and environment overrides (AMIABLOG_*).
// An unknown search method or segmenter is rejected here, at startup, never
// at query time.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("amiablog")
	v.SetConfigType("yaml")

	v.SetDefault("site.title", "AmiaBlog")
	v.SetDefault("site.language", "en")
	v.SetDefault("site.color_scheme", "DDAACC")
	v.SetDefault("site.recent_posts", 5)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("content.posts_dir", "content/posts")
	v.SetDefault("content.templates_dir", "templates")
	v.SetDefault("content.static_dir", "static")
	v.SetDefault("search.method", SearchMethodTokenized)
	v.SetDefault("search.segmenter", SegmenterCJK)
	v.SetDefault("search.max_query_length", 256)
	v.SetDefault("search.cache_size", 128)

	if path == "" {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("AMIABLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, defaults and env cover everything required.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Content.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Search.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

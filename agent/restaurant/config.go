// Package restaurant holds the immutable process-wide restaurant
// configuration and the menu keyword table. Agents only ever read it.
package restaurant

import (
	"fmt"

	"github.com/spf13/viper"
	configx "github.com/trattoria-labs/tavolo/pkg/config"
)

// MenuItem maps the keyword matched in user messages to the dish it stands
// for. Table order is the order extracted items come back in.
type MenuItem struct {
	Keyword  string  `mapstructure:"keyword" json:"keyword"`
	Name     string  `mapstructure:"name" json:"name"`
	Category string  `mapstructure:"category" json:"category"`
	Price    float64 `mapstructure:"price" json:"price"`
}

type Config struct {
	Name         string   `envconfig:"NAME" default:"Trattoria del Tavolo"`
	Address      string   `envconfig:"ADDRESS" default:"Via Garibaldi 12, Milano"`
	Hours        string   `envconfig:"HOURS" default:"Mar-Dom 12:00-15:00, 19:00-23:30"`
	Phone        string   `envconfig:"PHONE" default:"123456789"`
	Categories   []string `envconfig:"CATEGORIES" default:"Antipasti,Primi,Secondi,Dolci"`
	DeliveryCost float64  `envconfig:"DELIVERY_COST" default:"3.50"`
	MinimumOrder float64  `envconfig:"MINIMUM_ORDER" default:"15.00"`

	// MenuFile optionally points at a YAML file with a top-level "menu" list;
	// when unset the compiled-in menu is used.
	MenuFile string `envconfig:"MENU_FILE"`

	Menu []MenuItem `ignored:"true"`
}

func defaultMenu() []MenuItem {
	return []MenuItem{
		{Keyword: "margherita", Name: "Pizza Margherita", Category: "Pizze", Price: 8},
		{Keyword: "diavola", Name: "Pizza Diavola", Category: "Pizze", Price: 10},
		{Keyword: "carbonara", Name: "Pasta Carbonara", Category: "Pasta", Price: 9},
		{Keyword: "amatriciana", Name: "Pasta Amatriciana", Category: "Pasta", Price: 9},
		{Keyword: "caesar", Name: "Insalata Caesar", Category: "Insalate", Price: 7},
		{Keyword: "mista", Name: "Insalata Mista", Category: "Insalate", Price: 6},
	}
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load() (*Config, error) {
	cfg, err := configx.New[Config]("RESTAURANT")
	if err != nil {
		return nil, fmt.Errorf("restaurant config: %w", err)
	}

	if cfg.MenuFile == "" {
		cfg.Menu = defaultMenu()
		return cfg, nil
	}

	menu, err := loadMenuFile(cfg.MenuFile)
	if err != nil {
		return nil, err
	}
	cfg.Menu = menu
	return cfg, nil
}

func loadMenuFile(path string) ([]MenuItem, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}

	var menu []MenuItem
	if err := v.UnmarshalKey("menu", &menu); err != nil {
		return nil, fmt.Errorf("parse menu file: %w", err)
	}
	if len(menu) == 0 {
		return nil, fmt.Errorf("menu file %s has no items", path)
	}
	for i, item := range menu {
		if item.Keyword == "" || item.Name == "" {
			return nil, fmt.Errorf("menu item %d is missing keyword or name", i)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("menu item %q has negative price", item.Name)
		}
	}
	return menu, nil
}

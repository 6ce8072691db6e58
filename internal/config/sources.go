package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Feed is one named RSS/Atom feed.
type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Site is one scrapeable news page with its CSS selector set.
type Site struct {
	Name                string `yaml:"name"`
	URL                 string `yaml:"url"`
	ArticleSelector     string `yaml:"article_selector"`
	TitleSelector       string `yaml:"title_selector"`
	DescriptionSelector string `yaml:"description_selector"`
	DateSelector        string `yaml:"date_selector"`
}

// Sources is the YAML source-table file. The tables are read once at
// startup and treated as immutable afterwards.
type Sources struct {
	Feeds []Feed `yaml:"feeds"`
	Sites []Site `yaml:"sites"`
}

// LoadSources reads the feed and scrape-site tables from a YAML file.
func LoadSources(path string) (*Sources, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var src Sources
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&src); err != nil {
		return nil, fmt.Errorf("parse sources config %s: %w", path, err)
	}
	if len(src.Feeds) == 0 && len(src.Sites) == 0 {
		return nil, fmt.Errorf("sources config %s defines no feeds or sites", path)
	}
	return &src, nil
}

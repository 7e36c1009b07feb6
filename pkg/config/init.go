package config

import (
	"encoding/json"
	"fmt"
	"os"
)

var Config = DefaultConfiguration

var DefaultConfiguration = &Configuration{
	BuildDir:   "build",
	SrcDir:     "src",
	DataDir:    "locales",
	HTTPPrefix: "/",
	IndexFile:  "index.html",
	Minify:     true,
	I18n: I18nConfiguration{
		RootLocale:     "",
		Locales:        []string{"en"},
		PrefixTemplate: "/:locale/",
		TemplatesDir:   "localizable",
	},
	AssetDirs: map[string]string{
		"css":    "css",
		"js":     "js",
		"images": "images",
		"fonts":  "fonts",
	},
	AssetExts: map[string]string{
		"css": ".css",
		"js":  ".js",
	},
	ServeConfig: ServeConfiguration{
		Redirect404: "",
		Port:        8100,
	},
}

type Configuration struct {
	BuildDir   string `json:"build_directory,omitempty"`
	SrcDir     string `json:"source_directory,omitempty"`
	DataDir    string `json:"data_directory,omitempty"`
	HTTPPrefix string `json:"http_prefix,omitempty"`
	IndexFile  string `json:"index_file,omitempty"`
	Minify     bool   `json:"minify"`

	I18n I18nConfiguration `json:"i18n,omitempty"`

	Ignore    []string          `json:"ignore,omitempty"`
	Proxies   []ProxyRule       `json:"proxies,omitempty"`
	Redirects []RedirectRule    `json:"redirects,omitempty"`
	AssetDirs map[string]string `json:"asset_directories,omitempty"`
	AssetExts map[string]string `json:"asset_extensions,omitempty"`

	ServeConfig ServeConfiguration `json:"serve_config,omitempty"`
}

type I18nConfiguration struct {
	RootLocale     string            `json:"root_locale,omitempty"`
	Locales        []string          `json:"locales,omitempty"`
	PrefixTemplate string            `json:"prefix_template,omitempty"`
	TemplatesDir   string            `json:"templates_directory,omitempty"`
	Renames        map[string]string `json:"renames,omitempty"`
}

type ProxyRule struct {
	Destination string `json:"destination"`
	Target      string `json:"target"`
}

type RedirectRule struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type ServeConfiguration struct {
	Redirect404 string `json:"redirect_404"`
	Port        int    `json:"port"`
}

func Init(configpath string) error {
	if configpath == "" {
		configpath = "middleman.json"
	}

	_, err := os.Stat(configpath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("could not access configuration file %s: %v", configpath, err)
		}

		return nil
	}

	f, err := os.Open(configpath)
	if err != nil {
		return err
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(Config)
	if err != nil {
		return err
	}

	return nil
}

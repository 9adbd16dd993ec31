package feature

import (
	"fmt"

	"github.com/nightconcept/tscli/internal/core/manifest"
)

// Configuration files written by the installers.
const (
	ESLintConfigFile     = ".eslintrc.js"
	PrettierConfigFile   = ".prettierrc.js"
	CommitlintConfigFile = "commitlint.config.js"
)

// ESLintConfig is the content of .eslintrc.js.
type ESLintConfig struct {
	Env           map[string]bool     `json:"env"`
	Extends       []string            `json:"extends"`
	Parser        string              `json:"parser"`
	ParserOptions ESLintParserOptions `json:"parserOptions"`
	Plugins       []string            `json:"plugins"`
	Rules         map[string]any      `json:"rules"`
}

type ESLintParserOptions struct {
	EcmaVersion int    `json:"ecmaVersion"`
	SourceType  string `json:"sourceType"`
}

// DefaultESLintConfig returns the ESLint setup for TypeScript sources.
func DefaultESLintConfig() ESLintConfig {
	return ESLintConfig{
		Env:     map[string]bool{"es2021": true, "node": true},
		Extends: []string{"eslint:recommended", "plugin:@typescript-eslint/recommended"},
		Parser:  "@typescript-eslint/parser",
		ParserOptions: ESLintParserOptions{
			EcmaVersion: 12,
			SourceType:  "module",
		},
		Plugins: []string{"@typescript-eslint"},
		Rules:   map[string]any{},
	}
}

// PrettierConfig is the content of .prettierrc.js.
// rangeStart/rangeEnd are left at Prettier's defaults (whole file).
type PrettierConfig struct {
	PrintWidth                int    `json:"printWidth"`
	TabWidth                  int    `json:"tabWidth"`
	UseTabs                   bool   `json:"useTabs"`
	Semi                      bool   `json:"semi"`
	SingleQuote               bool   `json:"singleQuote"`
	QuoteProps                string `json:"quoteProps"`
	JSXSingleQuote            bool   `json:"jsxSingleQuote"`
	TrailingComma             string `json:"trailingComma"`
	BracketSpacing            bool   `json:"bracketSpacing"`
	JSXBracketSameLine        bool   `json:"jsxBracketSameLine"`
	ArrowParens               string `json:"arrowParens"`
	RequirePragma             bool   `json:"requirePragma"`
	InsertPragma              bool   `json:"insertPragma"`
	ProseWrap                 string `json:"proseWrap"`
	HTMLWhitespaceSensitivity string `json:"htmlWhitespaceSensitivity"`
	EndOfLine                 string `json:"endOfLine"`
}

// DefaultPrettierConfig returns the formatting rules.
func DefaultPrettierConfig() PrettierConfig {
	return PrettierConfig{
		PrintWidth:                80,
		TabWidth:                  2,
		UseTabs:                   false,
		Semi:                      true,
		SingleQuote:               true,
		QuoteProps:                "as-needed",
		JSXSingleQuote:            false,
		TrailingComma:             "all",
		BracketSpacing:            true,
		JSXBracketSameLine:        false,
		ArrowParens:               "always",
		RequirePragma:             false,
		InsertPragma:              false,
		ProseWrap:                 "preserve",
		HTMLWhitespaceSensitivity: "css",
		EndOfLine:                 "lf",
	}
}

// CommitlintConfig is the content of commitlint.config.js.
type CommitlintConfig struct {
	Extends []string `json:"extends"`
}

func DefaultCommitlintConfig() CommitlintConfig {
	return CommitlintConfig{Extends: []string{"@commitlint/config-conventional"}}
}

// RenderModule renders v as a CommonJS module exporting it.
func RenderModule(v any) (string, error) {
	body, err := manifest.Encode(v)
	if err != nil {
		return "", fmt.Errorf("rendering config module: %w", err)
	}
	return "module.exports = " + string(body[:len(body)-1]) + ";\n", nil
}

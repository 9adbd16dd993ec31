package toolchain

// TSConfigFile is the compiler configuration written to the project root.
const TSConfigFile = "tsconfig.json"

// OutDir is where tsc emits the build; the build script clears it first.
const OutDir = "lib"

// TSConfig is the subset of tsconfig.json tscli writes.
type TSConfig struct {
	CompileOnSave   bool            `json:"compileOnSave"`
	CompilerOptions CompilerOptions `json:"compilerOptions"`
	Exclude         []string        `json:"exclude"`
}

// CompilerOptions is the "compilerOptions" block.
type CompilerOptions struct {
	Target                 string              `json:"target"`
	Module                 string              `json:"module"`
	ModuleResolution       string              `json:"moduleResolution"`
	ExperimentalDecorators bool                `json:"experimentalDecorators"`
	EmitDecoratorMetadata  bool                `json:"emitDecoratorMetadata"`
	InlineSourceMap        bool                `json:"inlineSourceMap"`
	NoImplicitThis         bool                `json:"noImplicitThis"`
	NoUnusedLocals         bool                `json:"noUnusedLocals"`
	StripInternal          bool                `json:"stripInternal"`
	Pretty                 bool                `json:"pretty"`
	Declaration            bool                `json:"declaration"`
	OutDir                 string              `json:"outDir"`
	BaseURL                string              `json:"baseUrl"`
	Paths                  map[string][]string `json:"paths"`
}

// DefaultTSConfig returns the configuration that replaces the one generated
// by "tsc --init".
func DefaultTSConfig() TSConfig {
	return TSConfig{
		CompileOnSave: true,
		CompilerOptions: CompilerOptions{
			Target:                 "ES2018",
			Module:                 "commonjs",
			ModuleResolution:       "node",
			ExperimentalDecorators: true,
			EmitDecoratorMetadata:  true,
			InlineSourceMap:        true,
			NoImplicitThis:         true,
			NoUnusedLocals:         true,
			StripInternal:          true,
			Pretty:                 true,
			Declaration:            true,
			OutDir:                 OutDir,
			BaseURL:                "./",
			Paths: map[string][]string{
				"*": {"src/*"},
			},
		},
		Exclude: []string{OutDir, "node_modules"},
	}
}

// Package typedconf binds a strongly-typed configuration record to a file
// on disk through a pluggable serialization backend.
//
// A Config owns one record of a caller-defined type and one file. Building
// the Config loads the file into the record, or materializes the file from
// the supplied defaults when it does not exist yet. After that the record is
// plain data: read and mutate Config.Data directly, call Save to persist it
// and Reload to drop in-memory changes in favor of the file.
//
// # Format backends
//
// Each wire format lives in its own subpackage under format/ and registers
// itself for its file extensions when imported. A program selects formats by
// imports alone, so unused format libraries stay out of the binary:
//
//	import (
//	    "github.com/thirteen37/typedconf"
//	    _ "github.com/thirteen37/typedconf/format/json"
//	    _ "github.com/thirteen37/typedconf/format/toml"
//	)
//
// Available backends: json, json5, toml, yaml (also registered as yml) and
// ini. INI is limited to one level of nesting.
//
// # Basic usage
//
// With extension-based backend selection:
//
//	type Settings struct {
//	    Name  string `toml:"name"`
//	    Port  int    `toml:"port"`
//	}
//
//	cfg, err := typedconf.New("app/config.toml", Settings{Name: "demo", Port: 8080})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.Data.Port = 9090
//	if err := cfg.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// Or with an explicit backend and style:
//
//	s, err := typedconf.ExplicitSettings("app/config", toml.New(), format.DefaultStyle())
//	cfg, err := typedconf.FromSettings(s, Settings{})
//
// # Failure semantics
//
// A file that exists but does not parse fails construction; the defaults are
// never adopted over a present file and the file is never overwritten on a
// failed load. Reload keeps the previous record on any failure. Save writes
// in place with a single attempt. Decode failures are *format.ParseError,
// encode failures *format.EncodeError, and resolution failures
// *UnknownFormatError; file I/O errors wrap the stdlib *fs.PathError.
package typedconf

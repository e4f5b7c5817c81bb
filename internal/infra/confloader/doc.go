// Package confloader provides the configuration loading mechanism.
//
// It uses koanf to merge configuration from several sources into a
// typed struct. Priority (highest to lowest):
//
//  1. Command-line flags (LoadMap)
//  2. Environment variables (LIBROS_ prefix)
//  3. YAML configuration file
//  4. Default values already present in the target struct
package confloader

// Package config provides configuration loading, merging, and validation
// facilities for the registration robot.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Command-line flags
//  2. Environment variables (RPA_* and CONFIG)
//  3. The INI file, config.ini by default
//  4. Built-in defaults
//
// The INI file keeps the section layout of the original robot ([GERAL],
// [CREDENCIAS_APP], [EMAIL]) and adds optional [NAVEGADOR], [RETENTATIVAS]
// and [HISTORICO] sections. Boolean settings can only be switched on by a
// higher-priority source, never back off.
//
// The main entry point is [GetStructuredConfig].
package config

// Package config provides configuration management for the picking-list
// generator. It loads settings from PICKLIST_* environment variables and an
// optional YAML file, validates them, and carries the positional Layout
// contract that the reshaping core is constructed with.
package config

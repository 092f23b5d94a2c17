// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for customchat.
//
// Configuration is read from ~/.customchat/config.toml when present, with
// built-in defaults filling any gaps and CUSTOMCHAT_* environment variables
// applied last. All loaded configurations are validated before use.
package config

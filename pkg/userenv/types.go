package userenv

import (
	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/config"
	"github.com/bianoble/userenv/internal/env"
	"github.com/bianoble/userenv/internal/manifest"
)

// Type aliases re-export internal types as the public API.
// Users import "github.com/bianoble/userenv/pkg/userenv" and use
// userenv.Descriptor, userenv.Change, etc.

type ID = artifact.ID
type System = artifact.System
type Step = artifact.Step
type Builder = artifact.Builder
type Descriptor = env.Descriptor
type Symlink = env.Symlink
type UnresolvedError = env.UnresolvedError
type Manifest = manifest.Manifest
type Entry = manifest.Entry
type Change = manifest.Change
type ConfigLayer = config.ConfigLayerInfo

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-tree-sync/models"
)

// RenderBuildInfo renders the version box printed by "sync version".
func RenderBuildInfo(info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Version: ")
	b.WriteString(info.BuildVersion())
	b.WriteString("\nDate:    ")
	b.WriteString(info.BuildDate())
	b.WriteString("\nCommit:  ")
	b.WriteString(info.BuildCommit())

	return renderPage("go-tree-sync puller", b.String())
}

// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// 16, 24 and 32-bit integer samples are supported with any number of
// channels. Non-seekable readers are buffered in memory first because the
// go-audio decoder needs to seek between chunks.
package aiff

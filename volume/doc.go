// SPDX-License-Identifier: EPL-2.0

// Package volume implements a percentage based gain stage that saturates to
// the sample range of a PCM format.
package volume

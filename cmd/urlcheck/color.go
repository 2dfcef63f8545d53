// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import "github.com/muesli/termenv"

var (
	checkingColor      = termenv.ANSIYellow
	reachableColor     = termenv.ANSIGreen
	failedColor        = termenv.ANSIRed
	indeterminateColor = termenv.ANSIMagenta
)

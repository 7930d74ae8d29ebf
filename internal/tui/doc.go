// Package tui implements the terminal FAQ editor on top of internal/editor.
//
// Remote calls run as tea.Cmds; their results come back as loadedMsg and
// opDoneMsg. Editor notifications are collected by a feed and rendered as
// toasts on the next frame.
package tui

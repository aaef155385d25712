//go:build !linux

package main

func isTerminal(fd uintptr) bool { return false }

func terminalWidth(fd uintptr) int { return 0 }

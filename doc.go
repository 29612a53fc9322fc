// Package nanoqc holds the I/O helpers shared by the NanoPlot QC summary
// tools: opening local or gs:// paths, and transparently decompressing inputs.
package nanoqc

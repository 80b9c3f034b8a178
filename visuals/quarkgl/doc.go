// Package quarkgl is a small software 3D engine for the gallery visuals.
//
// It renders two primitive kinds into a caller-provided Target: point sprites
// (soft additive discs, depth-tested but not depth-writing) and billboards
// (textured quads that always face the camera). A single group transform spins
// both around the origin; billboard orientation ignores it and follows the
// camera instead.
//
// Pipeline (fixed):
//
//	Scene → Group transform → View/Projection → Rasterization → Target.
//
// Picking runs the same pipeline backwards: a screen point becomes a world ray
// (ScreenRay) which is tested against the billboard quads (Scene.Pick).
//
// Vector and matrix math is github.com/go-gl/mathgl/mgl32 throughout.
package quarkgl

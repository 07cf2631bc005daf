package kdtree_test

import (
	"testing"

	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/kdtree"
)

// BenchmarkBuild measures k-d tree construction cost over a Gaussian blob,
// mirroring bfs.BenchmarkBFS_Chain's shape (fixed N, b.N repeats).
func BenchmarkBuild(b *testing.B) {
	particles := gaussianParticles(5000, core.Vec3{}, 10, 7)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cp := append([]core.Particle{}, particles...)
		_, _ = kdtree.New(cp, 16, 0)
	}
}

func BenchmarkFOF(b *testing.B) {
	particles := gaussianParticles(5000, core.Vec3{}, 10, 7)
	tree, _ := kdtree.New(particles, 16, 0)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tree.FOF(1, 20, true)
	}
}

func BenchmarkFindNearest(b *testing.B) {
	particles := gaussianParticles(5000, core.Vec3{}, 10, 7)
	tree, _ := kdtree.New(particles, 16, 0)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = tree.FindNearest(core.Vec3{}, 32)
	}
}

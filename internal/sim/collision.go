package sim

import (
	"github.com/vovakirdan/shroom-run/internal/config"
	"github.com/vovakirdan/shroom-run/internal/core"
)

// PlayerHitbox returns the player's collision rectangle. It is anchored at
// the player's position and is smaller than the drawn sprite.
func PlayerHitbox(p *Player, cfg config.PlayerConfig) core.Rect {
	return core.NewRect(p.X, p.Y, cfg.HitboxWidth, cfg.HitboxHeight)
}

// FirstCollision tests the player rectangle against every obstacle's inset
// hitbox. It returns the index of the first hit, or -1.
func FirstCollision(player core.Rect, obstacles []Obstacle, insetX, insetY float64) int {
	for i, o := range obstacles {
		if player.Intersects(o.Hitbox(insetX, insetY)) {
			return i
		}
	}
	return -1
}

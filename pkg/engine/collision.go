// pkg/engine/collision.go
package engine

import (
	"github.com/opd-ai/go-spacerun/pkg/entity"
	"github.com/opd-ai/go-spacerun/pkg/event"
)

// resolveCollisions walks the tracked obstacles in announcement order. Each
// live obstacle is tested against the ship first, then against every live
// projectile, even when the ship has just hidden it. Evaluation stops as
// soon as the session ends.
func (s *Session) resolveCollisions() {
	for _, obstacle := range s.tracker.Obstacles() {
		if s.terminal {
			return
		}
		if !obstacle.Alive {
			continue
		}

		s.checkShipCollision(obstacle)
		if s.terminal {
			return
		}

		if s.checkProjectileCollisions(obstacle) {
			obstacle.Hide()
		}
	}
}

// checkShipCollision costs the ship one point of health and removes the
// obstacle, or crashes the ship when it has no health left.
func (s *Session) checkShipCollision(obstacle *entity.Obstacle) {
	if !s.ship.Bounds().Overlaps(obstacle.Bounds) {
		return
	}

	if s.ship.Health <= 0 {
		s.bus.Publish(event.NewCollisionEvent(event.ShipCrashed, s, obstacle.ID, 0, s.score))
		s.end(ReasonCrash, obstacle)
		return
	}

	obstacle.Hide()
	s.ship.TakeHit()
	s.logger.Debug(s.ctx, "ship hit", "obstacle", uint64(obstacle.ID), "health", s.ship.Health)
	s.bus.Publish(event.NewShipEvent(event.ShipDamaged, s, s.ship.Fuel, s.ship.Ammo, s.ship.Health))
	s.publishHUD()
}

// checkProjectileCollisions kills every live projectile overlapping the
// obstacle, multiplying the score once per hit. It reports whether the
// obstacle was shot.
func (s *Session) checkProjectileCollisions(obstacle *entity.Obstacle) bool {
	shot := false
	for _, p := range s.projectiles {
		if !p.Alive || !p.Bounds().Overlaps(obstacle.Bounds) {
			continue
		}
		shot = true
		p.Kill()
		s.score *= s.cfg.Rules.ShotMultiplier
		s.bus.Publish(event.NewCollisionEvent(event.ObstacleShot, s, obstacle.ID, p.ID, s.score))
	}
	return shot
}

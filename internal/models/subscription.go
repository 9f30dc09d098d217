package models

import "time"

// Subscription makes follower a follower of followee. Self-subscriptions
// are rejected before the insert and by the check constraint.
type Subscription struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_subscriptions_follower_followee" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_subscriptions_follower_followee;index;check:chk_subscriptions_no_self,follower_id <> followee_id" json:"followee_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

package services

import (
	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
)

// BuildCommentTree attaches replies to their top-level parents. Replies whose
// parent is not in tops are dropped rather than surfaced as roots, which
// happens when the parent falls outside the top-level page. The input order is
// preserved on both levels and Replies is always non-nil.
func BuildCommentTree(tops []dto.CommentNode, replies []dto.ReplyNode) []dto.CommentNode {
	byParent := make(map[int64][]dto.ReplyNode, len(tops))
	for _, reply := range replies {
		byParent[reply.ParentID] = append(byParent[reply.ParentID], reply)
	}

	tree := make([]dto.CommentNode, 0, len(tops))
	for _, top := range tops {
		node := top
		node.Replies = byParent[top.ID]
		if node.Replies == nil {
			node.Replies = make([]dto.ReplyNode, 0)
		}
		tree = append(tree, node)
	}
	return tree
}

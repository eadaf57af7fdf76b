package service

import (
	"time"

	"github.com/rominswe/pg-progress-sub001/internal/dto"
	"github.com/rominswe/pg-progress-sub001/internal/model"
)

// toAssignmentResponse 将分配记录（含可选预加载的双方实体）转为响应 DTO
func toAssignmentResponse(a *model.RoleAssignment) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		ID:             a.AssignmentID,
		StudentID:      a.StudentID,
		StaffID:        a.StaffID,
		StaffRoleType:  string(a.StaffRoleType),
		AssignmentType: string(a.Type),
		Status:         string(a.Status),
		RequestedBy:    a.RequestedBy,
		RequestDate:    a.RequestDate.Format(time.RFC3339),
		ApprovedBy:     a.ApprovedBy,
		Remarks:        a.Remarks,
	}
	if a.ApprovalDate != nil {
		d := a.ApprovalDate.Format(time.RFC3339)
		resp.ApprovalDate = &d
	}
	if a.Student != nil {
		resp.Student = toStudentBrief(a.Student)
	}
	if a.Staff != nil {
		resp.Staff = toStaffBrief(a.Staff)
	}
	return resp
}

func toStudentBrief(s *model.Student) *dto.StudentBrief {
	return &dto.StudentBrief{
		ID:            s.StudentID,
		MatricNo:      s.MatricNo,
		Name:          s.Name,
		Department:    s.Department,
		Program:       s.Program,
		AcademicLevel: s.AcademicLevel,
	}
}

func toStaffBrief(s *model.Staff) *dto.StaffBrief {
	return &dto.StaffBrief{
		ID:         s.StaffID,
		StaffNo:    s.StaffNo,
		Name:       s.Name,
		Department: s.Department,
	}
}

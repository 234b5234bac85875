package apiclient

const (
	pathNoticeList   = "/user/notice/list.do"
	pathNoticeView   = "/user/notice/view.do"
	pathNoticeWrite  = "/admin/notice/write.do"
	pathNoticeUpdate = "/admin/notice/update.do"
	pathNoticeDelete = "/admin/notice/delete.do"

	pathQnaList        = "/user/qna/list.do"
	pathQnaView        = "/user/qna/view.do"
	pathQuestionWrite  = "/member/qna/write.do"
	pathQuestionUpdate = "/member/qna/update.do"
	pathQuestionDelete = "/member/qna/delete.do"
	pathAnswerWrite    = "/admin/qna/write.do"
	pathAnswerUpdate   = "/admin/qna/update.do"
	pathAnswerDelete   = "/admin/qna/delete.do"

	pathPolicyList = "/member/policy/list.do"
	pathChatAsk    = "/member/chatbot/ask.do"

	pathGetID            = "/auth/getId.do"
	pathLogin            = "/auth/login.do"
	pathLogout           = "/auth/logout.do"
	pathSignUp           = "/auth/signUp.do"
	pathValidateMemberID = "/auth/validateMemberId.do"
)

package gpthandler

const (
	parseResumeTemperature = 0
	questionTemperature    = 0.7
)

const parseResumeSystemPromt = `You are an advanced AI resume parser. Your task is to extract structured information from resumes written in any format.`

const parseResumePattern = `Always extract the following fields if present:
- Full Name
- Email Address
- Phone Number
- Skills
- Education
- Work Experience

Additionally, extract these optional fields if you find them under any synonymous section names:
- Projects (also titled as Personal Projects, Notable Work, Freelance, etc.)
- Certifications (may appear under Licenses, Courses Completed, etc.)
- Languages (spoken or programming)
- Achievements or Key Contributions

Be tolerant of inconsistent formatting and varied section titles. Return your output in clean JSON format.

Resume:
%s`

const interviewerSystemPromt = `You are an AI interviewer. Be natural and professional.`

const firstQuestionPattern = `Based on the candidate's resume (in JSON), ask the first question to begin the interview.
Choose a relevant question based on experience, skills, or projects.
Return only the question.

Resume:
%s`

const nextQuestionPattern = `Based on the candidate's resume and the previous response, ask a relevant follow-up question.

Resume (in JSON):
%s

Candidate's Previous Response:
%s

Your job:
- Ask one intelligent follow-up or related question.
- Avoid repeating yourself.
- Ask technical, behavioral, or role-relevant questions.
- Return only the question.`
